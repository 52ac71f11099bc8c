package tools

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder 将工具调用指标上报 Prometheus
type PrometheusRecorder struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusRecorder 创建 Prometheus 记录器并注册指标
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "toolhub_tool_calls_total",
			Help: "工具调用总次数",
		}, []string{"tool", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toolhub_tool_call_duration_seconds",
			Help:    "工具调用耗时分布",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"tool"}),
	}
}

// RecordToolCall 记录一次工具调用
func (r *PrometheusRecorder) RecordToolCall(tool string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	r.calls.WithLabelValues(tool, status).Inc()
	r.duration.WithLabelValues(tool).Observe(duration.Seconds())
}
