package metrics

import (
	"net/http"
	"strconv"
	"time"

	"betty_server_go/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "betty_server"

var (
	// RequestCounter - число HTTP запросов к API по маршруту и статусу.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration - длительность HTTP запросов.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// RequestsInFlight - запросы, обрабатываемые прямо сейчас.
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// BettyRequests - обращения к Betty API по операции и результату.
	BettyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "betty",
			Name:      "requests_total",
			Help:      "Total number of requests to the Betty image API",
		},
		[]string{"operation", "status"},
	)

	// BettyDuration - длительность обращений к Betty API.
	BettyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "betty",
			Name:      "request_duration_seconds",
			Help:      "Betty image API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// BettyCacheResults - попадания и промахи кэша метаданных изображений.
	BettyCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "betty",
			Name:      "cache_results_total",
			Help:      "Betty image metadata cache hits and misses",
		},
		[]string{"result"},
	)
)

// ObserveBetty записывает результат одного обращения к Betty.
func ObserveBetty(operation string, status string, started time.Time) {
	BettyRequests.WithLabelValues(operation, status).Inc()
	BettyDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Handler отдает метрики в формате Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware считает запросы и их длительность по шаблону маршрута mux.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()

		start := time.Now()
		rec := middleware.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		RequestCounter.WithLabelValues(route, r.Method, strconv.Itoa(rec.Status)).Inc()
		RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
