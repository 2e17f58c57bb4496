package ingest

import (
	"context"
	"math/rand"
	"time"

	"sensor-app/models"
	"sensor-app/utils"
)

// LocationReader simulates GPS fixes along a slow drive heading north-east.
// The position carries over between runs.
type LocationReader struct {
	reader
	lat, lon float64
}

func NewLocationReader(cfg utils.LocationConfig, simulate bool) *LocationReader {
	return &LocationReader{
		reader: reader{name: models.SensorLocation.String(), sim: simulate},
		lat:    cfg.StartLatitude,
		lon:    cfg.StartLongitude,
	}
}

func (r *LocationReader) Run(ctx context.Context, interval time.Duration, deliver func(models.Location)) error {
	return tick(ctx, &r.reader, interval, r.readFix, deliver)
}

func (r *LocationReader) readFix() models.Location {
	// ~30 km/h heading north-east
	r.lat += 0.00001 + rand.Float64()*0.000005
	r.lon += 0.00001 + rand.Float64()*0.000005

	return models.Location{
		Latitude:           r.lat,
		Longitude:          r.lon,
		Altitude:           920.0 + rand.Float64()*2.0,
		HorizontalAccuracy: 4.0 + rand.Float64()*2.0,
		VerticalAccuracy:   3.0 + rand.Float64()*3.0,
		Speed:              8.0 + rand.Float64()*2.0,
		Course:             45.0 + rand.Float64()*5.0,
	}
}
