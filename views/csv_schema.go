package views

import "sensor-app/models"

// SchemaColumns is the single source of truth for the export header of each
// sensor. It is used even when a history is empty, so a header-only file can
// be shared. The per-row layout comes from the model's CSVRow.
var SchemaColumns = map[models.SensorKind][]string{
	models.SensorAcceleration: {"ID", "Time", "X-Axis", "Y-Axis", "Z-Axis"},
	models.SensorGravity:      {"ID", "Time", "X-Axis", "Y-Axis", "Z-Axis"},
	models.SensorGyroscope:    {"ID", "Time", "X-Axis", "Y-Axis", "Z-Axis"},
	models.SensorMagnetometer: {"ID", "Time", "X-Axis", "Y-Axis", "Z-Axis"},
	models.SensorAttitude:     {"ID", "Time", "Roll", "Pitch", "Yaw", "Heading"},
	models.SensorAltitude:     {"ID", "Time", "Pressure", "Relative Altitude"},
	models.SensorLocation:     {"ID", "Time", "Longitude", "Latitude", "Altitude", "Speed", "Course"},
}

// HeaderFor returns the export header for a sensor kind.
func HeaderFor(kind models.SensorKind) []string {
	cols, ok := SchemaColumns[kind]
	if !ok {
		return []string{"ID", "Time"}
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

var zeroPayloads = map[models.SensorKind]models.Payload{
	models.SensorAcceleration: models.Vector{},
	models.SensorGravity:      models.Vector{},
	models.SensorGyroscope:    models.Vector{},
	models.SensorMagnetometer: models.Vector{},
	models.SensorAttitude:     models.Attitude{},
	models.SensorAltitude:     models.Barometer{},
	models.SensorLocation:     models.Location{},
}

// FieldsFor lists the series field names a sensor kind delivers.
func FieldsFor(kind models.SensorKind) []string {
	p, ok := zeroPayloads[kind]
	if !ok {
		return nil
	}
	return p.FieldNames()
}
