package loader

import (
	"context"
	"fmt"

	"entitygraph/internal/cypher"
)

// Cleaner 删除不属于本轮 run 的节点和关系。
type Cleaner struct {
	client Runner
}

func NewCleaner(client Runner) *Cleaner {
	return &Cleaner{client: client}
}

// Cleanup 先删关系再删节点。
func (c *Cleaner) Cleanup(ctx context.Context, runID string) error {
	params := map[string]any{"run_id": runID}
	for _, query := range cypher.Statements("cleanup.cql") {
		if err := c.client.RunWrite(ctx, query, params); err != nil {
			return fmt.Errorf("清理过期数据失败: %w", err)
		}
	}
	return nil
}
