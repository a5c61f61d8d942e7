package job

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// TopologyWatcher 监听拓扑文件变化，静默 debounce 后触发回调。
// 监听的是所在目录，编辑器先写临时文件再 rename 的方式也能捕获。
type TopologyWatcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context) error
	logger   *zap.Logger
}

func NewTopologyWatcher(path string, debounce time.Duration, onChange func(context.Context) error, logger *zap.Logger) *TopologyWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TopologyWatcher{path: filepath.Clean(path), debounce: debounce, onChange: onChange, logger: logger}
}

// Run 阻塞直到 ctx 结束。
func (w *TopologyWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("监听目录失败: %w", err)
	}
	w.logger.Info("topology watcher started", zap.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("topology watcher stopped", zap.String("path", w.path))
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("topology file changed", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("reload topology failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.logger.Info("topology reloaded", zap.String("path", w.path))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
