package loader

import (
	"fmt"
	"time"

	"entitygraph/internal/domain"
	"entitygraph/internal/graph"
)

// BuildRows 把导出的图转换成写入 Neo4j 的节点和关系行。
func BuildRows(export graph.Export, runID string, now time.Time) ([]domain.NodeRow, []domain.RelRow) {
	nodes := make([]domain.NodeRow, 0, len(export.Nodes))
	for _, n := range export.Nodes {
		labels := []string{domain.LabelEntity}
		props := map[string]any{
			"level":        n.Level,
			"has_children": n.HasChildren,
		}
		if et := domain.EntityTypeOf(n.ID); et != "" {
			props["entity_type"] = string(et)
			if domain.IsIdentifier(string(et)) {
				labels = append(labels, string(et))
			}
		}
		nodes = append(nodes, domain.NodeRow{
			GUID:       n.ID,
			Labels:     labels,
			Properties: props,
			RunID:      runID,
			UpdatedAt:  now,
		})
	}

	type edgeKey struct {
		start, end string
		relType    domain.RelationType
	}
	seen := make(map[edgeKey]int, len(export.Edges))
	rels := make([]domain.RelRow, 0, len(export.Edges))
	for _, e := range export.Edges {
		key := edgeKey{e.Source, e.Target, e.Type}
		ordinal := seen[key]
		seen[key] = ordinal + 1
		rels = append(rels, domain.RelRow{
			StartGUID:  e.Source,
			EndGUID:    e.Target,
			Type:       e.Type,
			Ordinal:    ordinal,
			Properties: toProperties(e.Metadata),
			RunID:      runID,
		})
	}
	return nodes, rels
}

// toProperties 只保留 Neo4j 支持的属性值，其余转成字符串。
func toProperties(meta map[string]any) map[string]any {
	props := make(map[string]any, len(meta))
	for k, v := range meta {
		switch v.(type) {
		case nil:
		case string, bool, int, int32, int64, float32, float64, []string:
			props[k] = v
		default:
			props[k] = fmt.Sprint(v)
		}
	}
	return props
}
