package ioc

import (
	"context"
	"time"

	"entitygraph/internal/app"
	"entitygraph/internal/job"
	"entitygraph/internal/notify"
	"entitygraph/pkg/server"
	"go.uber.org/zap"
)

// InitJobs 构建巡检、心跳和拓扑文件监听任务。
func InitJobs(cfg app.Config, svc *app.Service, fanout *notify.RedisFanout, logger *zap.Logger) server.Jobs {
	jobs := server.Jobs{
		Monitor: job.NewScheduler("monitor", cfg.Monitor.Cron, func(ctx context.Context) error {
			svc.Monitor(ctx)
			return nil
		}, logger),
		Heartbeat: job.NewHeartbeat(cfg.Monitor.Heartbeat, svc.Graph.Stats, logger),
		Fanout:    fanout,
	}
	if cfg.Topology.Watch && cfg.Topology.Path != "" {
		debounce := time.Duration(cfg.Topology.DebounceMillis) * time.Millisecond
		jobs.Watcher = job.NewTopologyWatcher(cfg.Topology.Path, debounce, func(ctx context.Context) error {
			_, err := svc.Rebuild(ctx)
			return err
		}, logger)
	}
	return jobs
}
