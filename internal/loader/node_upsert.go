package loader

import (
	"context"
	"fmt"
	"sort"

	"entitygraph/internal/cypher"
	"entitygraph/internal/domain"
	"entitygraph/pkg/util"
)

// NodeUpserter 负责批量写入节点。
type NodeUpserter struct {
	client    Runner
	batchSize int
}

// NewNodeUpserter 创建节点 upsert 器。
func NewNodeUpserter(client Runner, batchSize int) *NodeUpserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &NodeUpserter{client: client, batchSize: batchSize}
}

// UpsertNodes 按标签组合分组后分批 MERGE。
func (u *NodeUpserter) UpsertNodes(ctx context.Context, rows []domain.NodeRow) error {
	if len(rows) == 0 {
		return nil
	}
	grouped := make(map[string][]domain.NodeRow)
	patterns := make(map[string]string)
	for _, row := range rows {
		key := domain.JoinLabels(row.Labels)
		grouped[key] = append(grouped[key], row)
		if _, ok := patterns[key]; !ok {
			patterns[key] = domain.LabelPattern(row.Labels)
		}
	}
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		query := cypher.MustTemplate("upsert_nodes.cql", map[string]string{"LabelPattern": patterns[key]})
		for _, chunk := range util.Chunk(grouped[key], u.batchSize) {
			params := map[string]any{"rows": toNodeParameters(chunk)}
			if err := u.client.RunWrite(ctx, query, params); err != nil {
				return fmt.Errorf("写入节点失败 labels=%s: %w", key, err)
			}
		}
	}
	return nil
}

func toNodeParameters(rows []domain.NodeRow) []map[string]any {
	res := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		res = append(res, map[string]any{
			"guid":       row.GUID,
			"properties": row.Properties,
			"run_id":     row.RunID,
			"updated_at": row.UpdatedAt,
		})
	}
	return res
}
