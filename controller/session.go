package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sensor-app/models"
	"sensor-app/services/ingest"
	"sensor-app/utils"
)

var (
	ErrInvalidInterval   = errors.New("invalid sampling interval")
	ErrSourceUnavailable = errors.New("sensor source unavailable")
)

// Observer is called for every appended sample, on the delivery goroutine.
// It must not call Stop or Delete on the session that notifies it.
type Observer[T models.Payload] func(models.Sample[T])

// SessionOptions tunes a Session.
type SessionOptions struct {
	// HistoryLimit caps the history; 0 keeps every sample.
	HistoryLimit int
	Clock        utils.Clock
}

type observerEntry[T models.Payload] struct {
	id uint64
	fn Observer[T]
}

// run is one start..stop span of source delivery.
type run struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Session accumulates the readings of one sensor into an ordered history.
//
// States: idle → running (Start) → idle (Stop) → running (Start again,
// counters continue). Delete stops and empties the history. Stop is
// synchronous: once it returns no further sample is appended.
type Session[T models.Payload] struct {
	kind   models.SensorKind
	source ingest.Source[T]
	limit  int
	clock  utils.Clock

	// life serialises Start and Stop so a new run never overlaps one that
	// is still winding down.
	life sync.Mutex

	mu        sync.RWMutex
	history   []models.Sample[T]
	next      int
	gen       uint64
	current   *run
	observers []observerEntry[T]
	nextObsID uint64
}

// NewSession wires a source to an empty, idle session.
func NewSession[T models.Payload](kind models.SensorKind, source ingest.Source[T], opts SessionOptions) *Session[T] {
	clock := opts.Clock
	if clock == nil {
		clock = utils.SystemClock
	}
	limit := opts.HistoryLimit
	if limit < 0 {
		limit = 0
	}
	return &Session[T]{
		kind:   kind,
		source: source,
		limit:  limit,
		clock:  clock,
		next:   1,
	}
}

func (s *Session[T]) Kind() models.SensorKind { return s.kind }

// Start begins delivery at roughly interval. Starting a running session is
// a no-op.
func (s *Session[T]) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%s: %w: %v", s.kind, ErrInvalidInterval, interval)
	}
	if err := s.source.Available(); err != nil {
		return fmt.Errorf("%s: %w: %w", s.kind, ErrSourceUnavailable, err)
	}

	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	if s.current != nil {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.gen++
	r := &run{gen: s.gen, cancel: cancel, done: make(chan struct{})}
	s.current = r
	s.mu.Unlock()

	go func() {
		defer close(r.done)
		err := s.source.Run(ctx, interval, func(v T) { s.append(r.gen, v) })
		if err != nil {
			utils.L().Warn("%s session: source stopped delivering: %v", s.kind, err)
		}
	}()

	utils.SessionRunning.WithLabelValues(s.kind.String()).Set(1)
	utils.L().Info("%s session started  (interval=%v)", s.kind, interval)
	return nil
}

// Stop ends delivery and waits for the source goroutine to exit.
func (s *Session[T]) Stop() {
	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	r := s.current
	s.current = nil
	n := len(s.history)
	s.mu.Unlock()
	if r == nil {
		return
	}

	r.cancel()
	<-r.done

	utils.SessionRunning.WithLabelValues(s.kind.String()).Set(0)
	utils.L().Info("%s session stopped  (samples=%d)", s.kind, n)
}

// Clear empties the history; the next sample gets counter 1.
func (s *Session[T]) Clear() {
	s.mu.Lock()
	s.history = nil
	s.next = 1
	s.mu.Unlock()

	utils.HistoryLength.WithLabelValues(s.kind.String()).Set(0)
	utils.L().Info("%s session cleared", s.kind)
}

// Delete stops the session and clears its history.
func (s *Session[T]) Delete() {
	s.Stop()
	s.Clear()
}

func (s *Session[T]) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Session[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Latest returns the most recent sample, if any.
func (s *Session[T]) Latest() (models.Sample[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.history) == 0 {
		return models.Sample[T]{}, false
	}
	return s.history[len(s.history)-1], true
}

// History returns a copy of every retained sample, oldest first.
func (s *Session[T]) History() []models.Sample[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sample[T], len(s.history))
	copy(out, s.history)
	return out
}

// Last returns up to n most recent samples, oldest first.
func (s *Session[T]) Last(n int) []models.Sample[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(s.history) {
		n = len(s.history)
	}
	out := make([]models.Sample[T], n)
	copy(out, s.history[len(s.history)-n:])
	return out
}

// Since returns the samples captured within d of the session clock's now.
func (s *Session[T]) Since(d time.Duration) []models.Sample[T] {
	cutoff := s.clock().Add(-d)
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := len(s.history)
	for i > 0 && !s.history[i-1].Timestamp.Before(cutoff) {
		i--
	}
	out := make([]models.Sample[T], len(s.history)-i)
	copy(out, s.history[i:])
	return out
}

// Subscribe registers fn for every future sample. The returned func removes
// it again.
func (s *Session[T]) Subscribe(fn Observer[T]) (unsubscribe func()) {
	s.mu.Lock()
	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observerEntry[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// append is the delivery callback. Readings from a run that has been
// stopped are discarded.
func (s *Session[T]) append(gen uint64, v T) {
	s.mu.Lock()
	if s.current == nil || s.current.gen != gen {
		s.mu.Unlock()
		return
	}
	sample := models.Sample[T]{Counter: s.next, Timestamp: s.clock(), Value: v}
	s.next++
	s.history = append(s.history, sample)
	if s.limit > 0 && len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
	n := len(s.history)
	observers := make([]Observer[T], len(s.observers))
	for i, o := range s.observers {
		observers[i] = o.fn
	}
	s.mu.Unlock()

	label := s.kind.String()
	utils.SamplesTotal.WithLabelValues(label).Inc()
	utils.HistoryLength.WithLabelValues(label).Set(float64(n))

	for _, fn := range observers {
		fn(sample)
	}
}

// ─── Recorder: the type-erased surface used by views and services ──────

func (s *Session[T]) LatestRecord() models.Record {
	if sample, ok := s.Latest(); ok {
		return sample
	}
	return nil
}

func (s *Session[T]) Records() []models.Record {
	return models.Records(s.History())
}

func (s *Session[T]) RecordsSince(d time.Duration) []models.Record {
	return models.Records(s.Since(d))
}

func (s *Session[T]) SubscribeRecords(fn func(models.Record)) (unsubscribe func()) {
	return s.Subscribe(func(sample models.Sample[T]) { fn(sample) })
}
