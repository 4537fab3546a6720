// Package metrics expone las métricas Prometheus del servicio: tráfico HTTP,
// autenticación/autorización y pool de Postgres.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg      prometheus.Registerer
	gatherer prometheus.Gatherer

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge

	tokensIssued *prometheus.CounterVec
	authFailures *prometheus.CounterVec
	authzDenials *prometheus.CounterVec
}

// New registra los collectors en un registry propio (más los de proceso y Go).
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registra en reg y sirve /metrics desde g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) (*Metrics, error) {
	m := &Metrics{
		reg:      reg,
		gatherer: g,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests HTTP procesados",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		}),
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Tokens emitidos por flujo (login, signup)",
		}, []string{"flow"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Requests rechazados por credencial (EXPIRED, INVALID, MISSING, WRONG_SECRET, UNKNOWN_IDENTITY)",
		}, []string{"reason"}),
		authzDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authz_denials_total",
			Help: "Acciones denegadas por la política de autorización",
		}, []string{"action"}),
	}

	collectors := []prometheus.Collector{
		m.requests, m.duration, m.inflight,
		m.tokensIssued, m.authFailures, m.authzDenials,
	}
	if _, own := reg.(*prometheus.Registry); own {
		collectors = append(collectors,
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
	}
	for _, c := range collectors {
		if err := register(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// register ignora colectores ya registrados.
func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}

// Handler sirve el endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RegisterPool agrega gauges del pool de Postgres.
func (m *Metrics) RegisterPool(pool *pgxpool.Pool) error {
	if pool == nil {
		return nil
	}
	return register(m.reg, newPoolCollector(pool))
}

func (m *Metrics) TokenIssued(flow string) {
	if m != nil {
		m.tokensIssued.WithLabelValues(flow).Inc()
	}
}

func (m *Metrics) AuthFailure(reason string) {
	if m != nil {
		m.authFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) AuthzDenied(action string) {
	if m != nil {
		m.authzDenials.WithLabelValues(action).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// UnmatchedRoute etiqueta requests sin patrón de chi (404, o antes del ruteo).
const UnmatchedRoute = "unmatched"

// Middleware instrumenta requests. La etiqueta route es el patrón de chi
// (/api/stores/{id}); sin patrón va UnmatchedRoute, así la cardinalidad
// no depende de los paths que mande el cliente.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.inflight.Inc()
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				m.inflight.Dec()
				route := routeLabel(r)
				method := strings.ToUpper(r.Method)
				status := rec.status
				if status == 0 {
					status = http.StatusOK
				}
				m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
				m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return UnmatchedRoute
}

// poolCollector expone pgxpool.Stat como gauges.
type poolCollector struct {
	pool *pgxpool.Pool

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
}

func newPoolCollector(pool *pgxpool.Pool) *poolCollector {
	return &poolCollector{
		pool:     pool,
		acquired: prometheus.NewDesc("pg_pool_acquired_conns", "Conexiones adquiridas", nil, nil),
		idle:     prometheus.NewDesc("pg_pool_idle_conns", "Conexiones inactivas", nil, nil),
		total:    prometheus.NewDesc("pg_pool_total_conns", "Conexiones abiertas", nil, nil),
		max:      prometheus.NewDesc("pg_pool_max_conns", "Máximo configurado", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(st.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(st.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(st.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(st.MaxConns()))
}
