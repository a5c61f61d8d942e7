package ioc

import (
	"entitygraph/internal/app"
	"entitygraph/internal/graph"
	"entitygraph/internal/notify"
	"go.uber.org/zap"
)

// InitRedisFanout 配置了 redis 地址时把图事件推送到频道。
func InitRedisFanout(cfg app.Config, g *graph.Graph, logger *zap.Logger) (*notify.RedisFanout, func()) {
	client := notify.NewRedisClient(cfg.Redis)
	if client == nil {
		return nil, func() {}
	}
	fanout := notify.NewRedisFanout(client, cfg.Redis, logger.Named("fanout"))
	unsubscribe := g.Subscribe(fanout)
	return fanout, func() {
		unsubscribe()
		if err := client.Close(); err != nil {
			logger.Warn("close redis client failed", zap.Error(err))
		}
	}
}
