package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultCronSpec = "*/5 * * * *"

// Scheduler 按 cron 表达式执行后台任务，上一次未结束时跳过本次。
type Scheduler struct {
	name     string
	cronExpr string
	logger   *zap.Logger
	cron     *cron.Cron
	task     func(context.Context) error
	parent   context.Context
	mu       sync.Mutex
	running  bool
}

// NewScheduler 构建调度器，spec 为空时使用默认表达式。
func NewScheduler(name, spec string, task func(context.Context) error, logger *zap.Logger) *Scheduler {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = defaultCronSpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{name: name, cronExpr: spec, logger: logger, task: task}
}

// Start 启动调度器，返回用于停止任务的函数。
func (s *Scheduler) Start(parent context.Context) context.CancelFunc {
	if s == nil {
		return func() {}
	}
	s.parent = parent
	c := cron.New()
	id, err := c.AddFunc(s.cronExpr, s.runOnce)
	if err != nil {
		s.logger.Error("failed to register cron job", zap.String("job", s.name), zap.String("cron", s.cronExpr), zap.Error(err))
		return func() {}
	}
	s.cron = c
	c.Start()
	s.logger.Info("job scheduler started", zap.String("job", s.name), zap.String("cron", s.cronExpr), zap.Time("next", c.Entry(id).Next))

	var once sync.Once
	stop := func() {
		once.Do(func() {
			ctx := s.cron.Stop()
			<-ctx.Done()
			s.logger.Info("job scheduler stopped", zap.String("job", s.name))
		})
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}

func (s *Scheduler) runOnce() {
	if s.task == nil {
		s.logger.Warn("task not configured", zap.String("job", s.name))
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("previous run still in progress, skip current schedule", zap.String("job", s.name))
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	runCtx := context.Background()
	if s.parent != nil {
		if s.parent.Err() != nil {
			s.logger.Info("scheduler context cancelled, skip run", zap.String("job", s.name))
			return
		}
		runCtx = s.parent
	}

	start := time.Now()
	err := s.task(runCtx)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("scheduled job failed", zap.String("job", s.name), zap.Duration("duration", elapsed), zap.Error(err))
		return
	}
	s.logger.Info("scheduled job completed", zap.String("job", s.name), zap.Duration("duration", elapsed))
}
