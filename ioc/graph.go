package ioc

import (
	"entitygraph/internal/app"
	"entitygraph/internal/graph"
	"entitygraph/internal/notify"
	"entitygraph/internal/topology"
	"go.uber.org/zap"
)

// InitGraph 按配置构建内存关系图，并挂上日志监听。
func InitGraph(cfg app.Config, logger *zap.Logger) (*graph.Graph, error) {
	gc, err := cfg.Graph.Build()
	if err != nil {
		return nil, err
	}
	g, err := graph.New(gc, logger.Named("graph"))
	if err != nil {
		return nil, err
	}
	g.Subscribe(notify.NewLogListener(logger.Named("events")))
	return g, nil
}

// InitTopologySource 构建拓扑数据源。
func InitTopologySource(cfg app.Config) topology.Source {
	return topology.NewFileSource(cfg.Topology.Path)
}
