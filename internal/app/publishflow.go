package app

import (
	"context"
	"fmt"

	"entitygraph/internal/graph"
	"entitygraph/internal/loader"
)

// PublishFlow 把当前关系图镜像写入 Neo4j。
type PublishFlow struct {
	Graph  *graph.Graph
	Mirror *loader.Mirror
}

func (f *PublishFlow) Run(ctx context.Context, runID string) (loader.Result, error) {
	if f == nil || f.Graph == nil || f.Mirror == nil {
		return loader.Result{}, fmt.Errorf("publish flow 未初始化")
	}
	res, err := f.Mirror.Sync(ctx, f.Graph.ExportForVisualization(), runID)
	if err != nil {
		return res, fmt.Errorf("镜像写入 neo4j 失败: %w", err)
	}
	return res, nil
}
