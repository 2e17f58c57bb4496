package controller

import (
	"context"
	"sync"
	"time"

	"sensor-app/models"
	"sensor-app/utils"
	"sensor-app/views"
)

// SensorView is what the dashboard shows for one sensor.
type SensorView struct {
	Running bool     `json:"running"`
	Samples int      `json:"samples"`
	Counter int      `json:"counter"`
	Lines   []string `json:"lines"`
}

// Frame is one dashboard redraw: the latest rendered values of every sensor.
type Frame struct {
	Timestamp time.Time                        `json:"timestamp"`
	Sensors   map[models.SensorKind]SensorView `json:"sensors"`
}

// DashboardController keeps the newest record of every session in a slot
// and, at a fixed refresh cadence, renders all slots into a Frame. Sensor
// delivery never waits on the dashboard: observers only swap a slot.
type DashboardController struct {
	mu     sync.Mutex
	latest map[models.SensorKind]models.Record

	recorders []Recorder
	presenter views.Presenter
	refresh   time.Duration

	Out chan *Frame // downstream consumers read this
}

// NewDashboardController creates a dashboard that redraws every refresh
// (defaults to 250 ms).
func NewDashboardController(presenter views.Presenter, refresh time.Duration) *DashboardController {
	if refresh <= 0 {
		refresh = 250 * time.Millisecond
	}
	return &DashboardController{
		latest:    make(map[models.SensorKind]models.Record),
		presenter: presenter,
		refresh:   refresh,
		Out:       make(chan *Frame, 16),
	}
}

// Start subscribes to every session and launches the redraw ticker. Out is
// closed once ctx is done.
func (dc *DashboardController) Start(ctx context.Context, sc *SensorsController) {
	dc.recorders = sc.Recorders()

	var unsubs []func()
	for _, rec := range dc.recorders {
		kind := rec.Kind()
		unsubs = append(unsubs, rec.SubscribeRecords(func(r models.Record) {
			dc.mu.Lock()
			dc.latest[kind] = r
			dc.mu.Unlock()
		}))
	}

	go dc.redraw(ctx, unsubs)
	utils.L().Info("dashboard controller started (refresh=%v, sensors=%d)", dc.refresh, len(dc.recorders))
}

func (dc *DashboardController) redraw(ctx context.Context, unsubs []func()) {
	defer close(dc.Out)
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	ticker := time.NewTicker(dc.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.L().Info("dashboard controller stopped")
			return
		case <-ticker.C:
			f := dc.Snapshot()
			utils.DashboardFramesTotal.Inc()

			// Non-blocking send
			select {
			case dc.Out <- f:
			default:
				utils.L().Warn("dashboard: output channel full, dropping frame")
			}
		}
	}
}

// Snapshot renders the current state of every session.
func (dc *DashboardController) Snapshot() *Frame {
	f := &Frame{
		Timestamp: time.Now(),
		Sensors:   make(map[models.SensorKind]SensorView, len(dc.recorders)),
	}
	for _, rec := range dc.recorders {
		kind := rec.Kind()
		n := rec.Len()

		dc.mu.Lock()
		r := dc.latest[kind]
		dc.mu.Unlock()
		if n == 0 {
			// cleared since the slot was filled
			r = nil
		}

		v := SensorView{Running: rec.Running(), Samples: n, Lines: dc.presenter.Lines(kind, r)}
		if r != nil {
			v.Counter = r.Seq()
		}
		f.Sensors[kind] = v
	}
	return f
}
