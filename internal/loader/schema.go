package loader

import (
	"context"
	"fmt"

	"entitygraph/internal/cypher"
)

// SchemaManager 负责初始化约束和索引。
type SchemaManager struct {
	client Runner
}

func NewSchemaManager(client Runner) *SchemaManager {
	return &SchemaManager{client: client}
}

func (m *SchemaManager) Ensure(ctx context.Context) error {
	for _, query := range cypher.Statements("init_schema.cql") {
		if err := m.client.RunRaw(ctx, query, nil); err != nil {
			return fmt.Errorf("执行 schema 语句失败: %w", err)
		}
	}
	return nil
}
