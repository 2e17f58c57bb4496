package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSensor is returned when a sensor name does not map to a kind.
var ErrUnknownSensor = errors.New("unknown sensor")

// SensorKind identifies one sensor stream.
type SensorKind int

const (
	SensorAcceleration SensorKind = iota
	SensorGravity
	SensorGyroscope
	SensorMagnetometer
	SensorAttitude
	SensorAltitude
	SensorLocation
)

// AllSensors lists every kind in display order.
var AllSensors = []SensorKind{
	SensorAcceleration,
	SensorGravity,
	SensorGyroscope,
	SensorMagnetometer,
	SensorAttitude,
	SensorAltitude,
	SensorLocation,
}

var sensorNames = map[SensorKind]string{
	SensorAcceleration: "acceleration",
	SensorGravity:      "gravity",
	SensorGyroscope:    "gyroscope",
	SensorMagnetometer: "magnetometer",
	SensorAttitude:     "attitude",
	SensorAltitude:     "altitude",
	SensorLocation:     "location",
}

func (s SensorKind) String() string {
	if n, ok := sensorNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseSensorKind maps a lowercase sensor name back to its kind.
func ParseSensorKind(name string) (SensorKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range sensorNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSensor, name)
}

// MarshalText lets kinds be used as JSON keys and values.
func (s SensorKind) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SensorKind) UnmarshalText(b []byte) error {
	k, err := ParseSensorKind(string(b))
	if err != nil {
		return err
	}
	*s = k
	return nil
}
