package ioc

import (
	"entitygraph/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitRegistry 构建独立的 prometheus registry，附带进程和 Go 运行时指标。
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// InitMetrics 构建并注册关系图指标。
func InitMetrics(reg *prometheus.Registry) *metrics.Metrics {
	m := metrics.New()
	m.MustRegister(reg)
	return m
}
