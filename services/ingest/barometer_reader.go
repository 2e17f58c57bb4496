package ingest

import (
	"context"
	"math"
	"math/rand"
	"time"

	"sensor-app/models"
	"sensor-app/utils"
)

// International standard atmosphere constants for the barometric formula.
const (
	isaScaleHeight = 44330.77 // m
	isaExponent    = 0.190263
)

// PressureAltitude returns the altitude in metres at which pressure p is
// measured, relative to the level where the pressure is p0.
func PressureAltitude(p, p0 float64) float64 {
	return isaScaleHeight * (1 - math.Pow(p/p0, isaExponent))
}

// PressureAtAltitude is the inverse of PressureAltitude.
func PressureAtAltitude(h, p0 float64) float64 {
	return p0 * math.Pow(1-h/isaScaleHeight, 1/isaExponent)
}

// BarometerReader simulates an altimeter. Relative altitude restarts at zero
// every time Run is called, like the platform altimeter does.
type BarometerReader struct {
	reader
	cfg utils.BarometerConfig
}

func NewBarometerReader(cfg utils.BarometerConfig, simulate bool) *BarometerReader {
	if cfg.BasePressure <= 0 {
		cfg.BasePressure = 101.325
	}
	return &BarometerReader{
		reader: reader{name: models.SensorAltitude.String(), sim: simulate},
		cfg:    cfg,
	}
}

func (r *BarometerReader) Run(ctx context.Context, interval time.Duration, deliver func(models.Barometer)) error {
	var (
		elapsed float64
		start   float64
		first   = true
	)
	read := func() models.Barometer {
		h := r.cfg.ClimbRateMps*elapsed + (rand.Float64()-0.5)*0.2
		elapsed += interval.Seconds()

		p := PressureAtAltitude(h, r.cfg.BasePressure)
		if first {
			start = p
			first = false
		}
		return models.Barometer{
			Pressure:         p,
			RelativeAltitude: PressureAltitude(p, r.cfg.BasePressure) - PressureAltitude(start, r.cfg.BasePressure),
		}
	}
	return tick(ctx, &r.reader, interval, read, deliver)
}
