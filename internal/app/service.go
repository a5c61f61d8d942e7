package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"entitygraph/internal/graph"
	"entitygraph/internal/loader"
	"entitygraph/internal/metrics"
	"entitygraph/internal/topology"
	"go.uber.org/zap"
)

// ErrPublishDisabled 表示未配置 Neo4j 镜像。
var ErrPublishDisabled = errors.New("未启用 neo4j 镜像")

// Service 负责装配各个 Flow 并提供统一入口。
type Service struct {
	Graph   *graph.Graph
	Builder *topology.Builder

	rebuild *RebuildFlow
	monitor *MonitorFlow
	publish *PublishFlow
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu   sync.Mutex
	last RebuildReport
}

// NewService 构建 Service，mirror 为 nil 时不做 Neo4j 镜像。
func NewService(g *graph.Graph, source topology.Source, mirror *loader.Mirror, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	builder := topology.NewBuilder(g, logger)
	svc := &Service{
		Graph:   g,
		Builder: builder,
		rebuild: &RebuildFlow{Source: source, Graph: g, Builder: builder, Logger: logger},
		monitor: &MonitorFlow{Graph: g, Metrics: m, Logger: logger},
		metrics: m,
		logger:  logger,
	}
	if mirror != nil {
		svc.publish = &PublishFlow{Graph: g, Mirror: mirror}
	}
	return svc
}

// Rebuild 从拓扑源全量重建，随后巡检，启用镜像时同步到 Neo4j。
// 同一时刻只允许一个重建。
func (s *Service) Rebuild(ctx context.Context) (RebuildReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	report, err := s.rebuild.Run(ctx)
	if s.metrics != nil {
		s.metrics.ObserveRebuild(time.Since(start), err)
	}
	if err != nil {
		return report, err
	}
	s.last = report
	s.monitor.Run(ctx)

	if s.publish != nil {
		if _, err := s.publish.Run(ctx, report.RunID); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Monitor 校验关系图并刷新指标。
func (s *Service) Monitor(ctx context.Context) MonitorReport {
	return s.monitor.Run(ctx)
}

// Publish 把当前关系图写入 Neo4j。
func (s *Service) Publish(ctx context.Context) (loader.Result, error) {
	if s.publish == nil {
		return loader.Result{}, ErrPublishDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	runID := s.last.RunID
	if runID == "" {
		runID = time.Now().UTC().Format("20060102T150405Z")
	}
	return s.publish.Run(ctx, runID)
}

// LastRebuild 返回最近一次成功重建的报告。
func (s *Service) LastRebuild() RebuildReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// AttachTopology 将单个集群追加到当前关系图，不清理旧边。
func (s *Service) AttachTopology(clusterGUID string, entities topology.ClusterEntities) (topology.BuildResult, error) {
	res, err := s.Builder.BuildClusterHierarchy(clusterGUID, entities)
	if err != nil {
		return res, fmt.Errorf("构建集群失败: %w", err)
	}
	return res, nil
}
