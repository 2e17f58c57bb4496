package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-app/models"
)

var captured = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func TestSampleCSVHeaderAndRow(t *testing.T) {
	s := models.Sample[models.Vector]{
		Counter:   3,
		Timestamp: captured,
		Value:     models.Vector{X: 1.5, Y: -0.25, Z: 0},
	}

	assert.Equal(t, []string{"ID", "Time", "X-Axis", "Y-Axis", "Z-Axis"}, s.CSVHeader())
	assert.Equal(t,
		[]string{"3", "2026-10-19 10:00:00.000", "1.500000", "-0.250000", "0.000000"},
		s.CSVRow(nil))
	assert.Equal(t, 3, s.Seq())
	assert.Equal(t, captured, s.CapturedAt())
}

func TestSampleUsesGivenFormatter(t *testing.T) {
	s := models.Sample[models.Barometer]{
		Counter:   1,
		Timestamp: captured,
		Value:     models.Barometer{Pressure: 100.5, RelativeAltitude: 2},
	}
	row := s.CSVRow(models.PlainFormatter{Precision: 2})
	assert.Equal(t, []string{"1", "2026-10-19 10:00:00.000", "100.50", "2.00"}, row)
}

func TestLocationExportsWithoutAccuracy(t *testing.T) {
	l := models.Location{Latitude: 1, Longitude: 2, Altitude: 3, HorizontalAccuracy: 9, VerticalAccuracy: 9, Speed: 4, Course: 5}
	assert.Equal(t, []string{"Longitude", "Latitude", "Altitude", "Speed", "Course"}, l.Columns())
	assert.Equal(t, []string{"2.0", "1.0", "3.0", "4.0", "5.0"}, l.Fields(models.PlainFormatter{Precision: 1}))

	v, ok := l.Field("horizontal_accuracy")
	require.True(t, ok)
	assert.Equal(t, 9.0, v)
}

func TestPayloadFieldLookup(t *testing.T) {
	payloads := []models.Payload{
		models.Vector{X: 1, Y: 2, Z: 3},
		models.Attitude{Roll: 1, Pitch: 2, Yaw: 3, Heading: 4},
		models.Barometer{Pressure: 1, RelativeAltitude: 2},
		models.Location{Latitude: 1, Longitude: 2},
	}
	for _, p := range payloads {
		for _, name := range p.FieldNames() {
			_, ok := p.Field(name)
			assert.True(t, ok, "%T.%s", p, name)
		}
		_, ok := p.Field("nope")
		assert.False(t, ok)
		assert.Len(t, p.Fields(nil), len(p.Columns()))
	}
}

func TestParseSensorKind(t *testing.T) {
	for _, k := range models.AllSensors {
		got, err := models.ParseSensorKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := models.ParseSensorKind(" Location ")
	require.NoError(t, err)
	assert.Equal(t, models.SensorLocation, got)

	_, err = models.ParseSensorKind("thermometer")
	assert.ErrorIs(t, err, models.ErrUnknownSensor)
}

func TestSensorKindJSONKeys(t *testing.T) {
	b, err := json.Marshal(map[models.SensorKind]int{models.SensorGyroscope: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"gyroscope":1}`, string(b))

	var back map[models.SensorKind]int
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 1, back[models.SensorGyroscope])
}

func TestRecordsKeepsOrder(t *testing.T) {
	samples := []models.Sample[models.Vector]{
		{Counter: 1, Timestamp: captured},
		{Counter: 2, Timestamp: captured.Add(time.Second)},
	}
	recs := models.Records(samples)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Seq())
	assert.Equal(t, 2, recs[1].Seq())
}
