package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"entitygraph/internal/app"
	"entitygraph/internal/job"
	"entitygraph/internal/notify"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Jobs 汇总随 HTTP 服务启动的后台任务，均可为 nil。
type Jobs struct {
	Monitor   *job.Scheduler
	Heartbeat *job.Scheduler
	Watcher   *job.TopologyWatcher
	Fanout    *notify.RedisFanout
}

// HTTPServer 封装 HTTP 服务运行所需的依赖。
type HTTPServer struct {
	Engine  *gin.Engine
	Logger  *zap.Logger
	Config  app.Config
	Service *app.Service
	Jobs    Jobs
}

// NewHTTPServer 构建 HTTPServer。
func NewHTTPServer(engine *gin.Engine, logger *zap.Logger, cfg app.Config, svc *app.Service, jobs Jobs) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPServer{Engine: engine, Logger: logger, Config: cfg, Service: svc, Jobs: jobs}
}

// Run 启动后台任务和 HTTP 服务，ctx 结束后优雅退出。
func (s *HTTPServer) Run(ctx context.Context) error {
	listen := strings.TrimSpace(s.Config.HTTP.Listen)
	if listen == "" {
		listen = ":8080"
	}

	if s.Jobs.Fanout != nil {
		go s.Jobs.Fanout.Run(ctx)
	}

	if s.Config.Topology.RebuildOnStart && s.Service != nil {
		if report, err := s.Service.Rebuild(ctx); err != nil {
			s.Logger.Error("initial rebuild failed", zap.Error(err))
		} else {
			s.Logger.Info("initial rebuild completed",
				zap.String("run_id", report.RunID),
				zap.Int("entities", report.Stats.TotalEntities))
		}
	} else {
		s.Logger.Info("initial rebuild skipped by configuration")
	}

	if s.Jobs.Monitor != nil {
		defer s.Jobs.Monitor.Start(ctx)()
	}
	if s.Jobs.Heartbeat != nil {
		defer s.Jobs.Heartbeat.Start(ctx)()
	}
	if s.Jobs.Watcher != nil {
		go func() {
			if err := s.Jobs.Watcher.Run(ctx); err != nil {
				s.Logger.Error("topology watcher exited", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{Addr: listen, Handler: s.Engine, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("http server starting", zap.String("listen", listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
