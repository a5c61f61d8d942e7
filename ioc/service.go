package ioc

import (
	"entitygraph/internal/app"
	"entitygraph/internal/graph"
	"entitygraph/internal/loader"
	"entitygraph/internal/metrics"
	"entitygraph/internal/topology"
	"go.uber.org/zap"
)

// InitAppService 构建关系图服务。
func InitAppService(g *graph.Graph, src topology.Source, mirror *loader.Mirror, m *metrics.Metrics, logger *zap.Logger) *app.Service {
	return app.NewService(g, src, mirror, m, logger)
}
