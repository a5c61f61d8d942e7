package app

import (
	"context"
	"fmt"

	"entitygraph/internal/graph"
	"entitygraph/internal/topology"
	"go.uber.org/zap"
)

// RebuildReport 汇总一次全量重建。
type RebuildReport struct {
	RunID    string                 `json:"run_id"`
	Clusters []topology.BuildResult `json:"clusters"`
	Stats    graph.Stats            `json:"stats"`
}

// RebuildFlow 拉取拓扑后清空关系图并逐个集群重建。
type RebuildFlow struct {
	Source  topology.Source
	Graph   *graph.Graph
	Builder *topology.Builder
	Logger  *zap.Logger
}

func (f *RebuildFlow) Run(ctx context.Context) (RebuildReport, error) {
	var report RebuildReport
	if f == nil || f.Source == nil || f.Graph == nil || f.Builder == nil {
		return report, fmt.Errorf("rebuild flow 依赖未注入完整")
	}
	if f.Logger == nil {
		f.Logger = zap.NewNop()
	}

	topo, err := f.Source.FetchTopology(ctx)
	if err != nil {
		return report, fmt.Errorf("拉取拓扑失败: %w", err)
	}
	report.RunID = topo.RunID
	f.Logger.Info("加载拓扑", zap.String("run_id", topo.RunID), zap.Int("clusters", len(topo.Clusters)))

	for _, c := range topo.Clusters {
		if err := f.Builder.Validate(c.GUID, c.ClusterEntities); err != nil {
			return report, fmt.Errorf("校验集群 %s 失败: %w", c.Name, err)
		}
	}

	f.Graph.Clear()
	for _, c := range topo.Clusters {
		res, err := f.Builder.BuildClusterHierarchy(c.GUID, c.ClusterEntities)
		if err != nil {
			return report, fmt.Errorf("构建集群 %s 失败: %w", c.Name, err)
		}
		report.Clusters = append(report.Clusters, res)
	}
	report.Stats = f.Graph.Stats()

	f.Logger.Info("重建完成",
		zap.String("run_id", report.RunID),
		zap.Int("entities", report.Stats.TotalEntities),
		zap.Int("relationships", report.Stats.TotalRelationships))
	return report, nil
}
