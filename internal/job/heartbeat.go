package job

import (
	"context"

	"entitygraph/internal/graph"
	"go.uber.org/zap"
)

// NewHeartbeat 定期输出关系图规模，便于在日志里确认服务存活。
func NewHeartbeat(spec string, stats func() graph.Stats, logger *zap.Logger) *Scheduler {
	if spec == "" {
		spec = "@hourly"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewScheduler("heartbeat", spec, func(context.Context) error {
		s := stats()
		logger.Info("graph heartbeat",
			zap.Int("entities", s.TotalEntities),
			zap.Int("relationships", s.TotalRelationships),
			zap.Int("hierarchy_depth", s.HierarchyDepth))
		return nil
	}, logger)
}
