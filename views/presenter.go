package views

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"sensor-app/models"
)

// ErrUnknownField is returned when a graph series names a field the sensor
// does not deliver.
var ErrUnknownField = errors.New("unknown field")

// Presenter renders the latest sample of a sensor as text lines, applying
// the user's display units.
type Presenter struct {
	Pressure PressureUnit
	Height   HeightUnit
	Speed    SpeedUnit
}

var vectorUnits = map[models.SensorKind]string{
	models.SensorAcceleration: "g",
	models.SensorGravity:      "g",
	models.SensorGyroscope:    "rad/s",
	models.SensorMagnetometer: "µT",
}

// Lines renders rec for kind. A nil record renders zero values.
func (p Presenter) Lines(kind models.SensorKind, rec models.Record) []string {
	var payload models.Payload
	if rec != nil {
		payload = rec.Payload()
	}

	switch kind {
	case models.SensorAcceleration, models.SensorGravity, models.SensorGyroscope, models.SensorMagnetometer:
		v, _ := payload.(models.Vector)
		unit := vectorUnits[kind]
		return []string{
			fmt.Sprintf("X-Axis: %.5f %s", v.X, unit),
			fmt.Sprintf("Y-Axis: %.5f %s", v.Y, unit),
			fmt.Sprintf("Z-Axis: %.5f %s", v.Z, unit),
		}
	case models.SensorAttitude:
		a, _ := payload.(models.Attitude)
		return []string{
			fmt.Sprintf("Roll: %.5f°", Degrees(a.Roll)),
			fmt.Sprintf("Pitch: %.5f°", Degrees(a.Pitch)),
			fmt.Sprintf("Yaw: %.5f°", Degrees(a.Yaw)),
			fmt.Sprintf("Heading: %.5f°", a.Heading),
		}
	case models.SensorAltitude:
		b, _ := payload.(models.Barometer)
		return []string{
			"Pressure: " + FormatPressure(b.Pressure, p.Pressure),
			"Altitude change: " + FormatHeight(b.RelativeAltitude, p.Height),
		}
	case models.SensorLocation:
		l, _ := payload.(models.Location)
		return []string{
			fmt.Sprintf("Latitude: %.6f° ± %.2fm", l.Latitude, l.HorizontalAccuracy),
			fmt.Sprintf("Longitude: %.6f° ± %.2fm", l.Longitude, l.HorizontalAccuracy),
			fmt.Sprintf("Altitude: %.2f ± %.2fm", l.Altitude, l.VerticalAccuracy),
			fmt.Sprintf("Direction: %.2f°", l.Course),
			"Speed: " + FormatSpeed(l.Speed, p.Speed),
		}
	}
	return nil
}

// Point is one vertex of a line graph.
type Point struct {
	Counter int       `json:"counter"`
	Time    time.Time `json:"time"`
	Value   float64   `json:"value"`
}

// Series extracts one named field from records of kind, in order. The field
// is checked against the kind even when records is empty.
func Series(kind models.SensorKind, records []models.Record, field string) ([]Point, error) {
	if !slices.Contains(FieldsFor(kind), field) {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, kind, field)
	}
	points := make([]Point, 0, len(records))
	for _, r := range records {
		v, ok := r.Payload().Field(field)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		points = append(points, Point{Counter: r.Seq(), Time: r.CapturedAt(), Value: v})
	}
	return points, nil
}
