package views

import (
	"fmt"
	"math"
)

// PressureUnit, HeightUnit and SpeedUnit are the display units a user can
// pick in the settings. Raw readings are kPa, metres and m/s.
type (
	PressureUnit string
	HeightUnit   string
	SpeedUnit    string
)

const (
	KiloPascal  PressureUnit = "kPa"
	HectoPascal PressureUnit = "hPa"
	Millibar    PressureUnit = "mbar"
	Bar         PressureUnit = "bar"
	Pascal      PressureUnit = "Pa"
	MmHg        PressureUnit = "mmHg"
	InHg        PressureUnit = "inHg"
	PSI         PressureUnit = "psi"
	Atmosphere  PressureUnit = "atm"

	Meter      HeightUnit = "m"
	Centimeter HeightUnit = "cm"
	Kilometer  HeightUnit = "km"
	Foot       HeightUnit = "ft"
	Yard       HeightUnit = "yd"
	Mile       HeightUnit = "mi"

	MetersPerSecond   SpeedUnit = "m/s"
	KilometersPerHour SpeedUnit = "km/h"
	MilesPerHour      SpeedUnit = "mph"
	Knots             SpeedUnit = "kn"
	FeetPerSecond     SpeedUnit = "ft/s"
)

// factors multiply the base unit into the target unit.
var pressureFactors = map[PressureUnit]float64{
	KiloPascal:  1,
	HectoPascal: 10,
	Millibar:    10,
	Bar:         0.01,
	Pascal:      1000,
	MmHg:        7.500615758456563,
	InHg:        0.2952998057228486,
	PSI:         0.14503773773020923,
	Atmosphere:  1 / 101.325,
}

var heightFactors = map[HeightUnit]float64{
	Meter:      1,
	Centimeter: 100,
	Kilometer:  0.001,
	Foot:       1 / 0.3048,
	Yard:       1 / 0.9144,
	Mile:       1 / 1609.344,
}

var speedFactors = map[SpeedUnit]float64{
	MetersPerSecond:   1,
	KilometersPerHour: 3.6,
	MilesPerHour:      3600 / 1609.344,
	Knots:             3600 / 1852.0,
	FeetPerSecond:     1 / 0.3048,
}

// PressureFromKPa converts kPa into unit. Unknown units return kpa unchanged.
func PressureFromKPa(kpa float64, unit PressureUnit) float64 {
	if f, ok := pressureFactors[unit]; ok {
		return kpa * f
	}
	return kpa
}

// PressureToKPa is the inverse of PressureFromKPa.
func PressureToKPa(v float64, unit PressureUnit) float64 {
	if f, ok := pressureFactors[unit]; ok {
		return v / f
	}
	return v
}

func HeightFromMeters(m float64, unit HeightUnit) float64 {
	if f, ok := heightFactors[unit]; ok {
		return m * f
	}
	return m
}

func HeightToMeters(v float64, unit HeightUnit) float64 {
	if f, ok := heightFactors[unit]; ok {
		return v / f
	}
	return v
}

func SpeedFromMetersPerSecond(ms float64, unit SpeedUnit) float64 {
	if f, ok := speedFactors[unit]; ok {
		return ms * f
	}
	return ms
}

func SpeedToMetersPerSecond(v float64, unit SpeedUnit) float64 {
	if f, ok := speedFactors[unit]; ok {
		return v / f
	}
	return v
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func FormatPressure(kpa float64, unit PressureUnit) string {
	return fmt.Sprintf("%.5f %s", PressureFromKPa(kpa, unit), unit)
}

func FormatHeight(m float64, unit HeightUnit) string {
	return fmt.Sprintf("%.5f %s", HeightFromMeters(m, unit), unit)
}

// FormatSpeed shows two decimals; negative speeds mean "invalid" on the
// location stream and are shown as zero.
func FormatSpeed(ms float64, unit SpeedUnit) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%.2f %s", SpeedFromMetersPerSecond(ms, unit), unit)
}
