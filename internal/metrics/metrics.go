// metrics — prometheus-коллекторы сервиса: HTTP и доменные счётчики.
// Все методы безопасны на nil-приёмнике: в тестах метрики можно не создавать.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — набор коллекторов одного реестра.
type Metrics struct {
	reg      *prometheus.Registry
	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	rfdCreated   prometheus.Counter
	transitions  *prometheus.CounterVec
	endorsements *prometheus.CounterVec
	revocations  prometheus.Counter
}

// New создаёт реестр с коллекторами процесса/Go и сервисными метриками.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		rfdCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfd_created_total",
			Help: "RFDs created.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rfd_status_transitions_total",
			Help: "RFD status transitions.",
		}, []string{"from", "to"}),
		endorsements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rfd_endorsements_total",
			Help: "Endorsement ledger changes.",
		}, []string{"action"}),
		revocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfd_gate_revocations_total",
			Help: "Sessions revoked by the domain allow-list.",
		}),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.inFlight, m.requests, m.duration,
		m.rfdCreated, m.transitions, m.endorsements, m.revocations,
	)

	return m
}

// Registry — реестр (для тестов и сборки /metrics).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler — /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) RFDCreated() {
	if m == nil {
		return
	}
	m.rfdCreated.Inc()
}

func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// Endorsement учитывает action: "endorse" или "unendorse".
func (m *Metrics) Endorsement(action string) {
	if m == nil {
		return
	}
	m.endorsements.WithLabelValues(action).Inc()
}

func (m *Metrics) GateRevocation() {
	if m == nil {
		return
	}
	m.revocations.Inc()
}

// Instrument — middleware RPS/latency/in-flight. Метка route — шаблон маршрута chi,
// а не сырой путь, чтобы ID в URL не раздували кардинальность.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}

		status := strconv.Itoa(sw.code)
		m.duration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, route, status).Inc()
	})
}

// statusWriter — запоминает код ответа.
type statusWriter struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.code = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
