package notify

import (
	"entitygraph/internal/graph"
	"go.uber.org/zap"
)

// LogListener 把图变更写入日志。
type LogListener struct {
	logger *zap.Logger
}

func NewLogListener(logger *zap.Logger) *LogListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) OnGraphEvent(e graph.Event) {
	if e.Relationship == nil {
		l.logger.Info("graph event", zap.String("kind", string(e.Kind)), zap.String("id", e.ID))
		return
	}
	l.logger.Debug("graph event",
		zap.String("kind", string(e.Kind)),
		zap.String("id", e.ID),
		zap.String("source", e.Relationship.Source),
		zap.String("target", e.Relationship.Target),
		zap.String("type", string(e.Relationship.Type)))
}
