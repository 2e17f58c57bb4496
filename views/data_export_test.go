package views_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-app/models"
	"sensor-app/views"
)

var t0 = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func vectorRecords(n int) []models.Record {
	samples := make([]models.Sample[models.Vector], n)
	for i := range samples {
		samples[i] = models.Sample[models.Vector]{
			Counter:   i + 1,
			Timestamp: t0.Add(time.Duration(i) * 100 * time.Millisecond),
			Value:     models.Vector{X: float64(i) + 0.5, Y: -0.25, Z: 1},
		}
	}
	return models.Records(samples)
}

func TestRenderProducesHeaderPlusOneLinePerSample(t *testing.T) {
	exp := views.NewExporter(';', views.NewNumberFormat("en", 3))
	for _, n := range []int{0, 1, 7, 250} {
		out, err := exp.Render(models.SensorAcceleration, vectorRecords(n))
		require.NoError(t, err)
		assert.Equal(t, n+1, strings.Count(out, "\n"), "n=%d", n)
	}
}

func TestRenderFormat(t *testing.T) {
	exp := views.NewExporter(';', views.NewNumberFormat("en", 3))
	out, err := exp.Render(models.SensorGravity, vectorRecords(2))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID;Time;X-Axis;Y-Axis;Z-Axis", lines[0])
	assert.Equal(t, "1;2026-10-19 08:30:00.000;0.5;-0.25;1", lines[1])
	assert.Equal(t, "2;2026-10-19 08:30:00.100;1.5;-0.25;1", lines[2])
}

func TestRenderUsesLocaleDecimalSeparator(t *testing.T) {
	exp := views.NewExporter(';', views.NewNumberFormat("de", 3))
	out, err := exp.Render(models.SensorMagnetometer, vectorRecords(1))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	fields := strings.Split(lines[1], ";")
	require.Len(t, fields, 5)
	assert.Equal(t, "0,5", fields[2])
}

func TestRenderEmptyHistoryStillHasHeader(t *testing.T) {
	exp := views.NewExporter(0, nil)
	for _, kind := range models.AllSensors {
		out, err := exp.Render(kind, nil)
		require.NoError(t, err)
		assert.Equal(t, strings.Join(views.HeaderFor(kind), ";")+"\n", out)
	}
}

func TestSchemaMatchesModelHeaders(t *testing.T) {
	headers := map[models.SensorKind][]string{
		models.SensorAcceleration: models.Sample[models.Vector]{}.CSVHeader(),
		models.SensorAttitude:     models.Sample[models.Attitude]{}.CSVHeader(),
		models.SensorAltitude:     models.Sample[models.Barometer]{}.CSVHeader(),
		models.SensorLocation:     models.Sample[models.Location]{}.CSVHeader(),
	}
	for kind, h := range headers {
		assert.Equal(t, views.HeaderFor(kind), h, kind.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	exp := views.NewExporter(',', views.NewNumberFormat("en", 2))

	path, err := exp.WriteFile(dir, models.SensorGyroscope, vectorRecords(4))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gyroscope.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "\n"))
	assert.True(t, strings.HasPrefix(string(data), "ID,Time,X-Axis,Y-Axis,Z-Axis\n"))
}

func TestCSVWriterCountsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	w, err := views.NewCSVWriter(path, 0, ';', []string{"a", "b"})
	require.NoError(t, err)

	w.WriteRow([]string{"1", "2"})
	w.WriteRow([]string{"3", "4"})
	assert.Equal(t, uint64(2), w.Rows())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n3;4\n", string(data))
}

func TestParseDelimiter(t *testing.T) {
	assert.Equal(t, ';', views.ParseDelimiter(""))
	assert.Equal(t, '\t', views.ParseDelimiter("\t"))
	assert.Equal(t, ',', views.ParseDelimiter(",;"))
}
