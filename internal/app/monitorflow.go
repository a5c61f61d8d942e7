package app

import (
	"context"

	"entitygraph/internal/graph"
	"entitygraph/internal/metrics"
	"go.uber.org/zap"
)

// MonitorReport 是一次巡检的结果。
type MonitorReport struct {
	Stats  graph.Stats   `json:"stats"`
	Issues []graph.Issue `json:"issues"`
}

// MonitorFlow 校验关系图并刷新指标。
type MonitorFlow struct {
	Graph   *graph.Graph
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

func (f *MonitorFlow) Run(context.Context) MonitorReport {
	report := MonitorReport{
		Stats:  f.Graph.Stats(),
		Issues: f.Graph.ValidateRelationships(),
	}
	if f.Metrics != nil {
		f.Metrics.Observe(report.Stats, report.Issues)
	}
	if f.Logger != nil && len(report.Issues) > 0 {
		f.Logger.Warn("关系图校验发现问题", zap.Int("issues", len(report.Issues)))
		for _, issue := range report.Issues {
			f.Logger.Debug("validation issue",
				zap.String("kind", string(issue.Kind)),
				zap.String("source", issue.SourceGUID),
				zap.String("target", issue.TargetGUID),
				zap.Strings("cycle", issue.Cycle))
		}
	}
	return report
}
