package models

// Vector holds one three-axis motion reading. Units depend on the sensor:
// acceleration and gravity in g, gyroscope in rad/s, magnetometer in µT.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (Vector) Columns() []string {
	return []string{"X-Axis", "Y-Axis", "Z-Axis"}
}

func (v Vector) Fields(f Formatter) []string {
	return formatAll(f, v.X, v.Y, v.Z)
}

func (Vector) FieldNames() []string { return []string{"x", "y", "z"} }

func (v Vector) Field(name string) (float64, bool) {
	switch name {
	case "x":
		return v.X, true
	case "y":
		return v.Y, true
	case "z":
		return v.Z, true
	}
	return 0, false
}

// Attitude is the device orientation. Roll, pitch and yaw are radians,
// heading is degrees from north.
type Attitude struct {
	Roll    float64 `json:"roll"`
	Pitch   float64 `json:"pitch"`
	Yaw     float64 `json:"yaw"`
	Heading float64 `json:"heading"`
}

func (Attitude) Columns() []string {
	return []string{"Roll", "Pitch", "Yaw", "Heading"}
}

func (a Attitude) Fields(f Formatter) []string {
	return formatAll(f, a.Roll, a.Pitch, a.Yaw, a.Heading)
}

func (Attitude) FieldNames() []string { return []string{"roll", "pitch", "yaw", "heading"} }

func (a Attitude) Field(name string) (float64, bool) {
	switch name {
	case "roll":
		return a.Roll, true
	case "pitch":
		return a.Pitch, true
	case "yaw":
		return a.Yaw, true
	case "heading":
		return a.Heading, true
	}
	return 0, false
}

// Barometer holds one altimeter reading.
type Barometer struct {
	Pressure         float64 `json:"pressure"`          // kPa
	RelativeAltitude float64 `json:"relative_altitude"` // metres since the first reading
}

func (Barometer) Columns() []string {
	return []string{"Pressure", "Relative Altitude"}
}

func (b Barometer) Fields(f Formatter) []string {
	return formatAll(f, b.Pressure, b.RelativeAltitude)
}

func (Barometer) FieldNames() []string { return []string{"pressure", "relative_altitude"} }

func (b Barometer) Field(name string) (float64, bool) {
	switch name {
	case "pressure":
		return b.Pressure, true
	case "relative_altitude":
		return b.RelativeAltitude, true
	}
	return 0, false
}
