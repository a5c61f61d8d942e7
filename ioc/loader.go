package ioc

import (
	"context"
	"time"

	"entitygraph/internal/app"
	"entitygraph/internal/loader"
	"go.uber.org/zap"
)

// InitNeo4jClient 在启用镜像时连接 Neo4j，未启用返回 nil。
func InitNeo4jClient(ctx context.Context, cfg app.Config, logger *zap.Logger) (*loader.Client, func(), error) {
	if !cfg.Publish.Enabled {
		logger.Info("neo4j mirror disabled")
		return nil, func() {}, nil
	}
	client, err := loader.NewClient(ctx, cfg.Neo4j)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.Warn("close neo4j client failed", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// InitMirror 构建 Neo4j 镜像写入器。
func InitMirror(client *loader.Client, cfg app.Config, logger *zap.Logger) *loader.Mirror {
	if client == nil {
		return nil
	}
	return loader.NewMirror(client, cfg.Publish.Options, logger.Named("mirror"))
}
