package models

// Location holds one GPS fix.
type Location struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Altitude           float64 `json:"altitude"`            // metres above sea level
	HorizontalAccuracy float64 `json:"horizontal_accuracy"` // metres
	VerticalAccuracy   float64 `json:"vertical_accuracy"`   // metres
	Speed              float64 `json:"speed"`               // m/s
	Course             float64 `json:"course"`              // degrees from true north
}

// Columns omits the accuracies; they are shown but never exported.
func (Location) Columns() []string {
	return []string{"Longitude", "Latitude", "Altitude", "Speed", "Course"}
}

func (l Location) Fields(f Formatter) []string {
	return formatAll(f, l.Longitude, l.Latitude, l.Altitude, l.Speed, l.Course)
}

func (Location) FieldNames() []string {
	return []string{
		"latitude", "longitude", "altitude",
		"horizontal_accuracy", "vertical_accuracy", "speed", "course",
	}
}

func (l Location) Field(name string) (float64, bool) {
	switch name {
	case "latitude":
		return l.Latitude, true
	case "longitude":
		return l.Longitude, true
	case "altitude":
		return l.Altitude, true
	case "horizontal_accuracy":
		return l.HorizontalAccuracy, true
	case "vertical_accuracy":
		return l.VerticalAccuracy, true
	case "speed":
		return l.Speed, true
	case "course":
		return l.Course, true
	}
	return 0, false
}
