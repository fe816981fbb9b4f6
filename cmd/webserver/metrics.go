package main

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizshow",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quizshow",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quizshow",
		Name:      "games_started_total",
		Help:      "Games started, including restarts",
	})

	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizshow",
		Name:      "games_finished_total",
		Help:      "Games that reached a terminal state, by outcome",
	}, []string{"status"})

	lifelinesUsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizshow",
		Name:      "lifelines_used_total",
		Help:      "Lifelines spent, by kind",
	}, []string{"kind"})

	winnings = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quizshow",
		Name:      "winnings",
		Help:      "Prize paid out per finished game",
		Buckets:   []float64{0, 100, 200, 1000, 2000, 5000, 10000},
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "quizshow",
		Name:      "active_sessions",
		Help:      "Play sessions currently held in memory",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("underlying ResponseWriter does not support hijacking")
}

// instrument records request count and latency under the route pattern, so
// session ids never become label values.
func instrument(route string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next(rec, r, ps)

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	}
}

func metricsHandler() httprouter.Handle {
	h := promhttp.Handler()
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.ServeHTTP(w, r)
	}
}
