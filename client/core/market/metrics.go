package market

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 操作指标
type Metrics struct {
	actions  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tokens   prometheus.Gauge
}

// NewMetrics 创建并注册指标，reg 为 nil 时不注册
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		actions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftmarket",
			Name:      "actions_total",
			Help:      "Marketplace actions by kind and terminal state",
		}, []string{"action", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nftmarket",
			Name:      "action_duration_seconds",
			Help:      "Time from dispatch to terminal state",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"action"}),
		tokens: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "nftmarket",
			Name:      "tokens",
			Help:      "Number of tokens in the last synchronized view",
		}),
	}
}
