package graph

import "entitygraph/internal/domain"

// Stats 是关系图的汇总统计，只计正向关系。
type Stats struct {
	TotalEntities      int                         `json:"total_entities"`
	TotalRelationships int                         `json:"total_relationships"`
	RelationshipCounts map[domain.RelationType]int `json:"relationship_counts"`
	HierarchyDepth     int                         `json:"hierarchy_depth"`
}

// Stats 汇总实体数、正向关系数、按类型计数以及最大层级深度。
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	counts := make(map[domain.RelationType]int)
	for _, rel := range g.forward {
		counts[rel.Type]++
	}
	depth := 0
	for _, guid := range g.order {
		if level := g.levelLocked(guid); level > depth {
			depth = level
		}
	}
	return Stats{
		TotalEntities:      len(g.order),
		TotalRelationships: len(g.forward),
		RelationshipCounts: counts,
		HierarchyDepth:     depth,
	}
}
