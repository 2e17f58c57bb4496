package models

import "time"

// TimeLayout is how capture times appear in exports and text views.
const TimeLayout = "2006-01-02 15:04:05.000"

// Sample is one timestamped reading appended to a session history.
// Counter starts at 1 and grows by one per appended sample.
type Sample[T Payload] struct {
	Counter   int       `json:"counter"`
	Timestamp time.Time `json:"timestamp"`
	Value     T         `json:"value"`
}

// CSVHeader returns ID, Time and the payload's data columns.
func (s Sample[T]) CSVHeader() []string {
	return append([]string{"ID", "Time"}, s.Value.Columns()...)
}

// CSVRow serialises one sample. A nil formatter falls back to PlainFormatter.
func (s Sample[T]) CSVRow(f Formatter) []string {
	row := []string{itoa(s.Counter), s.Timestamp.Format(TimeLayout)}
	return append(row, s.Value.Fields(f)...)
}

func (s Sample[T]) Seq() int              { return s.Counter }
func (s Sample[T]) CapturedAt() time.Time { return s.Timestamp }
func (s Sample[T]) Payload() Payload      { return s.Value }

// Record is the type-erased view of a Sample used by presentation and export.
type Record interface {
	CSVRowWriter
	Seq() int
	CapturedAt() time.Time
	Payload() Payload
}

// Records erases the payload type of a history slice.
func Records[T Payload](samples []Sample[T]) []Record {
	out := make([]Record, len(samples))
	for i, s := range samples {
		out[i] = s
	}
	return out
}
