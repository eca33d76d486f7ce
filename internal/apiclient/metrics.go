package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — гистограмма длительности запросов к API.
type Metrics struct {
	duration *prometheus.HistogramVec
}

// NewMetrics регистрирует метрики в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rentify",
			Subsystem: "api_client",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the booking API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "code"}),
	}
	reg.MustRegister(m.duration)
	return m
}

func (m *Metrics) observe(op string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status/100) + "xx"
	}
	m.duration.WithLabelValues(op, code).Observe(d.Seconds())
}
