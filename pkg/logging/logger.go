package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger 基于开发配置构建 logger，level 与 encoding 为空时取 info/console。
func NewZapLogger(level, encoding string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()

	encoding = strings.TrimSpace(encoding)
	if encoding == "" {
		encoding = "console"
	}
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("不支持的日志编码: %q", encoding)
	}
	cfg.Encoding = encoding

	lvl := zapcore.InfoLevel
	if level = strings.TrimSpace(level); level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("日志级别配置错误: %w", err)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
