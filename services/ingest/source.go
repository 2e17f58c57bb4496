package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"sensor-app/utils"
)

// ErrUnavailable is returned by sources that cannot deliver readings on
// this host (no simulation and no hardware).
var ErrUnavailable = errors.New("sensor unavailable")

// Source delivers raw readings of type T. Run calls deliver once per tick on
// a single goroutine until ctx is cancelled.
type Source[T any] interface {
	Name() string
	Available() error
	Run(ctx context.Context, interval time.Duration, deliver func(T)) error
}

// reader carries what every simulated reader shares: a name, the simulate
// switch and a produced counter.
type reader struct {
	name     string
	sim      bool
	produced uint64
}

func (r *reader) Name() string { return r.name }

func (r *reader) Available() error {
	if !r.sim {
		// TODO: hook up a real IMU/GNSS driver behind this check
		return fmt.Errorf("%s: %w", r.name, ErrUnavailable)
	}
	return nil
}

// Produced returns the number of readings delivered so far.
func (r *reader) Produced() uint64 {
	return atomic.LoadUint64(&r.produced)
}

// tick runs read/deliver at interval until ctx is done.
func tick[T any](ctx context.Context, r *reader, interval time.Duration, read func() T, deliver func(T)) error {
	if err := r.Available(); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("%s: invalid interval %v", r.name, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	utils.L().Debug("%s reader started  (interval=%v)", r.name, interval)

	for {
		select {
		case <-ctx.Done():
			utils.L().Debug("%s reader stopped  (produced=%d)", r.name, r.Produced())
			return nil
		case <-ticker.C:
			deliver(read())
			atomic.AddUint64(&r.produced, 1)
		}
	}
}
