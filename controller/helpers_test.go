package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"sensor-app/models"
	"sensor-app/utils"
)

// manualSource delivers exactly the readings a test pushes.
type manualSource[T any] struct {
	ch          chan T
	ack         chan struct{}
	unavailable error
}

func newManualSource[T any]() *manualSource[T] {
	return &manualSource[T]{ch: make(chan T), ack: make(chan struct{})}
}

func (m *manualSource[T]) Name() string     { return "manual" }
func (m *manualSource[T]) Available() error { return m.unavailable }

func (m *manualSource[T]) Run(ctx context.Context, _ time.Duration, deliver func(T)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case v := <-m.ch:
			deliver(v)
			m.ack <- struct{}{}
		}
	}
}

// push hands v to the running source and waits until it was delivered.
func (m *manualSource[T]) push(v T) {
	m.ch <- v
	<-m.ack
}

// overlapSource ticks like a real reader and records the highest number of
// Run calls that were active at the same time.
type overlapSource struct {
	active  int32
	maxSeen int32
	state   float64 // mutated on every tick; the race detector flags overlapping runs
}

func (o *overlapSource) Name() string     { return "overlap" }
func (o *overlapSource) Available() error { return nil }

func (o *overlapSource) Run(ctx context.Context, interval time.Duration, deliver func(models.Vector)) error {
	n := atomic.AddInt32(&o.active, 1)
	defer atomic.AddInt32(&o.active, -1)
	for {
		seen := atomic.LoadInt32(&o.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&o.maxSeen, seen, n) {
			break
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// linger so a competing Start has a window to overlap
			time.Sleep(100 * time.Microsecond)
			return nil
		case <-ticker.C:
			o.state++
			deliver(models.Vector{X: o.state})
		}
	}
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func testLocationConfig() utils.LocationConfig {
	return utils.LocationConfig{Enabled: true, StartLatitude: 12.9716, StartLongitude: 77.5946}
}

// testConfig enables the given sensors with simulation on.
func testConfig(simulate bool, enable ...string) *utils.Config {
	cfg := &utils.Config{}
	cfg.Simulation.Enabled = simulate
	cfg.Settings.FrequencyHz = 100
	for _, name := range enable {
		switch name {
		case "acceleration":
			cfg.Sensors.Acceleration.Enabled = true
		case "gravity":
			cfg.Sensors.Gravity.Enabled = true
		case "gyroscope":
			cfg.Sensors.Gyroscope.Enabled = true
		case "magnetometer":
			cfg.Sensors.Magnetometer.Enabled = true
		case "attitude":
			cfg.Sensors.Attitude.Enabled = true
		case "altitude":
			cfg.Sensors.Altitude.Enabled = true
		case "location":
			cfg.Sensors.Location = testLocationConfig()
		}
	}
	cfg.ApplyDefaults()
	return cfg
}
