// Package metrics — счётчики Prometheus для HTTP слоя и вызовов модели.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal — HTTP запросы по методу, шаблону маршрута и статусу.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loria_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// UpstreamDuration — сколько ждали модель, по операциям chat/image.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loria_upstream_duration_seconds",
		Help:    "Time spent waiting for the model.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"operation"})

	// UpstreamErrors — неудачные вызовы модели по операции и категории ошибки.
	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loria_upstream_errors_total",
		Help: "Failed model calls by error kind.",
	}, []string{"operation", "kind"})

	// размер загруженных картинок
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loria_upload_bytes",
		Help:    "Size of images uploaded for analysis.",
		Buckets: prometheus.ExponentialBuckets(16*1024, 4, 7),
	})
)
