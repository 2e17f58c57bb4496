package controller

import (
	"time"

	"sensor-app/models"
)

// Recorder is the payload-independent view of a Session used by the
// dashboard, the exporter and the HTTP API.
type Recorder interface {
	Kind() models.SensorKind
	Start(interval time.Duration) error
	Stop()
	Clear()
	Delete()
	Running() bool
	Len() int
	// LatestRecord returns nil when the history is empty.
	LatestRecord() models.Record
	Records() []models.Record
	RecordsSince(d time.Duration) []models.Record
	SubscribeRecords(fn func(models.Record)) (unsubscribe func())
}

var (
	_ Recorder = (*Session[models.Vector])(nil)
	_ Recorder = (*Session[models.Attitude])(nil)
	_ Recorder = (*Session[models.Barometer])(nil)
	_ Recorder = (*Session[models.Location])(nil)
)
