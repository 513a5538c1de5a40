package middleware

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records request counts and latencies per method, route and
// status.
type Metrics struct {
    requests *prometheus.CounterVec
    duration *prometheus.HistogramVec
    gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry().
func NewMetrics(reg *prometheus.Registry) *Metrics {
    m := &Metrics{
        requests: prometheus.NewCounterVec(
            prometheus.CounterOpts{Name: "fyyur_http_requests_total", Help: "HTTP requests served"},
            []string{"method", "route", "status"},
        ),
        duration: prometheus.NewHistogramVec(
            prometheus.HistogramOpts{
                Name:    "fyyur_http_request_duration_seconds",
                Help:    "HTTP request latency",
                Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
            },
            []string{"method", "route", "status"},
        ),
        gatherer: reg,
    }
    reg.MustRegister(m.requests, m.duration)
    return m
}

// Middleware observes every request after the handler (and the error
// handler) ran.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            status := c.Response().Status
            if err != nil {
                if he, ok := err.(*echo.HTTPError); ok {
                    status = he.Code
                } else if !c.Response().Committed {
                    status = http.StatusInternalServerError
                }
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            labels := []string{c.Request().Method, route, strconv.Itoa(status)}
            m.requests.WithLabelValues(labels...).Inc()
            m.duration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
            return err
        }
    }
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
    return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
