package controller

import (
	"errors"
	"fmt"
	"time"

	"sensor-app/models"
	"sensor-app/services/ingest"
	"sensor-app/utils"
)

// SensorsController owns one Session per enabled sensor and the reader
// that feeds it.
type SensorsController struct {
	interval time.Duration
	order    []Recorder
	byKind   map[models.SensorKind]Recorder
	produced map[models.SensorKind]func() uint64
}

// NewSensorsController creates a session and a reader for every enabled
// sensor in cfg.
func NewSensorsController(cfg *utils.Config) *SensorsController {
	sc := &SensorsController{
		interval: cfg.Settings.Interval(),
		byKind:   make(map[models.SensorKind]Recorder),
		produced: make(map[models.SensorKind]func() uint64),
	}
	sim := cfg.Simulation.Enabled
	opts := SessionOptions{HistoryLimit: cfg.Settings.HistoryLimit}

	vectors := []struct {
		kind    models.SensorKind
		enabled bool
	}{
		{models.SensorAcceleration, cfg.Sensors.Acceleration.Enabled},
		{models.SensorGravity, cfg.Sensors.Gravity.Enabled},
		{models.SensorGyroscope, cfg.Sensors.Gyroscope.Enabled},
		{models.SensorMagnetometer, cfg.Sensors.Magnetometer.Enabled},
	}
	for _, v := range vectors {
		if !v.enabled {
			continue
		}
		r := ingest.NewVectorReader(v.kind, sim)
		sc.Add(NewSession[models.Vector](v.kind, r, opts), r.Produced)
	}

	if cfg.Sensors.Attitude.Enabled {
		r := ingest.NewAttitudeReader(sim)
		sc.Add(NewSession[models.Attitude](models.SensorAttitude, r, opts), r.Produced)
	}
	if cfg.Sensors.Altitude.Enabled {
		r := ingest.NewBarometerReader(cfg.Sensors.Altitude, sim)
		sc.Add(NewSession[models.Barometer](models.SensorAltitude, r, opts), r.Produced)
	}
	if cfg.Sensors.Location.Enabled {
		r := ingest.NewLocationReader(cfg.Sensors.Location, sim)
		sc.Add(NewSession[models.Location](models.SensorLocation, r, opts), r.Produced)
	}

	return sc
}

// Add registers a recorder. produced may be nil.
func (sc *SensorsController) Add(rec Recorder, produced func() uint64) {
	if sc.byKind == nil {
		sc.byKind = make(map[models.SensorKind]Recorder)
		sc.produced = make(map[models.SensorKind]func() uint64)
	}
	if _, dup := sc.byKind[rec.Kind()]; !dup {
		sc.order = append(sc.order, rec)
	}
	sc.byKind[rec.Kind()] = rec
	if produced != nil {
		sc.produced[rec.Kind()] = produced
	}
}

// Interval is the sampling interval derived from the configured frequency.
func (sc *SensorsController) Interval() time.Duration { return sc.interval }

// Recorder looks up the session of a sensor.
func (sc *SensorsController) Recorder(kind models.SensorKind) (Recorder, error) {
	rec, ok := sc.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s not enabled", models.ErrUnknownSensor, kind)
	}
	return rec, nil
}

// Recorders returns every registered session in display order.
func (sc *SensorsController) Recorders() []Recorder {
	out := make([]Recorder, len(sc.order))
	copy(out, sc.order)
	return out
}

// StartAll starts every session at the configured interval. Sessions whose
// source is unavailable stay idle; their errors are joined.
func (sc *SensorsController) StartAll() error {
	var errs []error
	for _, rec := range sc.order {
		if err := rec.Start(sc.interval); err != nil {
			utils.L().Warn("sensors controller: %v", err)
			errs = append(errs, err)
		}
	}
	utils.L().Info("sensors controller: %d/%d sessions running", len(sc.order)-len(errs), len(sc.order))
	return errors.Join(errs...)
}

func (sc *SensorsController) StopAll() {
	for _, rec := range sc.order {
		rec.Stop()
	}
}

func (sc *SensorsController) DeleteAll() {
	for _, rec := range sc.order {
		rec.Delete()
	}
}

// LogStats prints produced/held counters for each session.
func (sc *SensorsController) LogStats() {
	for _, rec := range sc.order {
		var produced uint64
		if fn, ok := sc.produced[rec.Kind()]; ok {
			produced = fn()
		}
		utils.L().Info("  %-13s running=%-5v produced=%d  held=%d",
			rec.Kind(), rec.Running(), produced, rec.Len())
	}
}
