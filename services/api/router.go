package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sensor-app/controller"
	"sensor-app/models"
	"sensor-app/utils"
	"sensor-app/views"
)

// Deps are the collaborators the HTTP surface exposes. Live and Metrics are
// optional.
type Deps struct {
	Sensors   *controller.SensorsController
	Exporter  *views.Exporter
	Presenter views.Presenter
	Live      http.Handler
	Metrics   http.Handler
}

type server struct {
	Deps
}

// SensorState is the JSON view of one session.
type SensorState struct {
	Sensor  models.SensorKind `json:"sensor"`
	Running bool              `json:"running"`
	Samples int               `json:"samples"`
	Counter int               `json:"counter,omitempty"`
	Lines   []string          `json:"lines,omitempty"`
}

// NewRouter builds the chi router for the sensor API.
func NewRouter(deps Deps) http.Handler {
	s := &server{Deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/sensors", func(r chi.Router) {
		r.Get("/", s.listSensors)
		r.Route("/{sensor}", func(r chi.Router) {
			r.Get("/", s.getSensor)
			r.Delete("/", s.deleteSensor)
			r.Post("/start", s.startSensor)
			r.Post("/stop", s.stopSensor)
			r.Get("/series", s.series)
			r.Get("/export.csv", s.exportCSV)
		})
	})
	if deps.Live != nil {
		r.Handle("/live", deps.Live)
	}
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		utils.L().Debug("http %s %s -> %d (%v)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *server) recorder(w http.ResponseWriter, r *http.Request) (controller.Recorder, bool) {
	kind, err := models.ParseSensorKind(chi.URLParam(r, "sensor"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	rec, err := s.Sensors.Recorder(kind)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return rec, true
}

func (s *server) state(rec controller.Recorder, withLines bool) SensorState {
	st := SensorState{Sensor: rec.Kind(), Running: rec.Running(), Samples: rec.Len()}
	latest := rec.LatestRecord()
	if latest != nil {
		st.Counter = latest.Seq()
	}
	if withLines {
		st.Lines = s.Presenter.Lines(rec.Kind(), latest)
	}
	return st
}

func (s *server) listSensors(w http.ResponseWriter, r *http.Request) {
	recs := s.Sensors.Recorders()
	out := make([]SensorState, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.state(rec, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) getSensor(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.state(rec, true))
}

// startSensor accepts an optional ?hz= frequency override.
func (s *server) startSensor(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder(w, r)
	if !ok {
		return
	}
	interval := s.Sensors.Interval()
	if hz := r.URL.Query().Get("hz"); hz != "" {
		n, err := strconv.Atoi(hz)
		if err != nil || n < utils.MinFrequencyHz || n > utils.MaxFrequencyHz {
			writeError(w, fmt.Errorf("%w: hz=%q", controller.ErrInvalidInterval, hz))
			return
		}
		interval = time.Second / time.Duration(n)
	}
	if err := rec.Start(interval); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state(rec, false))
}

func (s *server) stopSensor(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder(w, r)
	if !ok {
		return
	}
	rec.Stop()
	writeJSON(w, http.StatusOK, s.state(rec, false))
}

func (s *server) deleteSensor(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder(w, r)
	if !ok {
		return
	}
	rec.Delete()
	w.WriteHeader(http.StatusNoContent)
}

// series returns graph points for ?field= over the last ?window= (default
// 10s; "0" means the whole history, negative windows are rejected).
func (s *server) series(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	window := 10 * time.Second
	if raw := q.Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid window: " + raw})
			return
		}
		window = d
	}

	records := rec.Records()
	if window > 0 {
		records = rec.RecordsSince(window)
	}
	points, err := views.Series(rec.Kind(), records, q.Get("field"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *server) exportCSV(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder(w, r)
	if !ok {
		return
	}
	records := rec.Records()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Kind().String()+".csv"))
	if err := s.Exporter.Export(w, rec.Kind(), records); err != nil {
		utils.L().Error("export %s over http: %v", rec.Kind(), err)
		return
	}
	utils.ExportsTotal.WithLabelValues(rec.Kind().String()).Inc()
	utils.ExportedRowsTotal.Add(float64(len(records)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.L().Warn("http: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUnknownSensor):
		status = http.StatusNotFound
	case errors.Is(err, controller.ErrInvalidInterval), errors.Is(err, views.ErrUnknownField):
		status = http.StatusBadRequest
	case errors.Is(err, controller.ErrSourceUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
