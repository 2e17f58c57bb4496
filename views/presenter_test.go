package views_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-app/models"
	"sensor-app/views"
)

func TestPresenterAltitudeUsesDisplayUnits(t *testing.T) {
	p := views.Presenter{Pressure: views.HectoPascal, Height: views.Foot}
	rec := models.Sample[models.Barometer]{
		Counter: 1,
		Value:   models.Barometer{Pressure: 101.325, RelativeAltitude: 0.3048},
	}
	assert.Equal(t, []string{
		"Pressure: 1013.25000 hPa",
		"Altitude change: 1.00000 ft",
	}, p.Lines(models.SensorAltitude, rec))
}

func TestPresenterMissingRecordShowsZeros(t *testing.T) {
	p := views.Presenter{Pressure: views.KiloPascal, Height: views.Meter, Speed: views.MetersPerSecond}

	assert.Equal(t, []string{
		"X-Axis: 0.00000 g",
		"Y-Axis: 0.00000 g",
		"Z-Axis: 0.00000 g",
	}, p.Lines(models.SensorAcceleration, nil))

	lines := p.Lines(models.SensorLocation, nil)
	require.Len(t, lines, 5)
	assert.Equal(t, "Speed: 0.00 m/s", lines[4])
}

func TestPresenterAttitudeInDegrees(t *testing.T) {
	p := views.Presenter{}
	rec := models.Sample[models.Attitude]{Value: models.Attitude{Roll: math.Pi / 2, Pitch: 0, Yaw: -math.Pi, Heading: 270}}
	assert.Equal(t, []string{
		"Roll: 90.00000°",
		"Pitch: 0.00000°",
		"Yaw: -180.00000°",
		"Heading: 270.00000°",
	}, p.Lines(models.SensorAttitude, rec))
}

func TestPresenterLocationSpeed(t *testing.T) {
	p := views.Presenter{Speed: views.KilometersPerHour}
	rec := models.Sample[models.Location]{Value: models.Location{Latitude: 12.5, Longitude: 77.25, HorizontalAccuracy: 5, Speed: 10, Course: 45}}
	lines := p.Lines(models.SensorLocation, rec)
	require.Len(t, lines, 5)
	assert.Equal(t, "Latitude: 12.500000° ± 5.00m", lines[0])
	assert.Equal(t, "Direction: 45.00°", lines[3])
	assert.Equal(t, "Speed: 36.00 km/h", lines[4])
}

func TestSeries(t *testing.T) {
	recs := vectorRecords(3)
	points, err := views.Series(models.SensorAcceleration, recs, "x")
	require.NoError(t, err)
	require.Len(t, points, 3)
	for i, pt := range points {
		assert.Equal(t, i+1, pt.Counter)
		assert.Equal(t, float64(i)+0.5, pt.Value)
		assert.Equal(t, t0.Add(time.Duration(i)*100*time.Millisecond), pt.Time)
	}

	_, err = views.Series(models.SensorAcceleration, recs, "pressure")
	assert.ErrorIs(t, err, views.ErrUnknownField)

	empty, err := views.Series(models.SensorAltitude, nil, "relative_altitude")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSeriesRejectsUnknownFieldOnEmptyHistory(t *testing.T) {
	for _, kind := range models.AllSensors {
		_, err := views.Series(kind, nil, "bogus")
		assert.ErrorIs(t, err, views.ErrUnknownField, kind.String())
	}
}

func TestFieldsFor(t *testing.T) {
	assert.Equal(t, []string{"x", "y", "z"}, views.FieldsFor(models.SensorMagnetometer))
	assert.Contains(t, views.FieldsFor(models.SensorLocation), "speed")
	assert.Nil(t, views.FieldsFor(models.SensorKind(99)))
}

func TestNumberFormat(t *testing.T) {
	en := views.NewNumberFormat("en", 3)
	de := views.NewNumberFormat("de", 3)

	assert.Equal(t, "1.5", en.Decimal(1.5))
	assert.Equal(t, "1,5", de.Decimal(1.5))
	assert.Equal(t, "1234567.25", en.Decimal(1234567.25))
	assert.Equal(t, "0.125", en.Decimal(0.125))

	fallback := views.NewNumberFormat("not a locale!", 0)
	assert.Equal(t, "2.5", fallback.Decimal(2.5))

	var zero views.NumberFormat
	assert.Equal(t, "2.5", zero.Decimal(2.5))
}
