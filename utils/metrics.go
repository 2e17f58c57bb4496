package utils

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SamplesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sensor_samples_total",
		Help: "Total number of samples appended to session histories",
	}, []string{"sensor"})
	HistoryLength = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sensor_history_length",
		Help: "Number of samples currently held in a session history",
	}, []string{"sensor"})
	SessionRunning = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sensor_session_running",
		Help: "1 while a session receives readings, 0 otherwise",
	}, []string{"sensor"})
	ExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sensor_exports_total",
		Help: "Total number of CSV exports",
	}, []string{"sensor"})
	ExportedRowsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensor_exported_rows_total",
		Help: "Total number of sample rows written to CSV exports",
	})
	LiveClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sensor_live_clients",
		Help: "Number of connected live dashboard clients",
	})
	DashboardFramesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensor_dashboard_frames_total",
		Help: "Total number of dashboard frames emitted",
	})
	MQTTPublishErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensor_mqtt_publish_errors_total",
		Help: "Total number of failed MQTT sample publications",
	})

	registerOnce sync.Once
)

// InitMetrics registers all Prometheus collectors used by the application.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SamplesTotal,
			HistoryLength,
			SessionRunning,
			ExportsTotal,
			ExportedRowsTotal,
			LiveClients,
			DashboardFramesTotal,
			MQTTPublishErrorsTotal,
		)
	})
}

// MetricsHandler returns an HTTP handler that exposes the registered metrics.
func MetricsHandler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}
