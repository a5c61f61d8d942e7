package ioc

import (
	"entitygraph/internal/app"
	"entitygraph/pkg/logging"
	"go.uber.org/zap"
)

// InitLogger 构建全局 logger，退出时 flush。
func InitLogger(cfg app.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewZapLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}
