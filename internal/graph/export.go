package graph

import "entitygraph/internal/domain"

// ExportNode 是可视化输出的节点。
type ExportNode struct {
	ID          string `json:"id"`
	Level       int    `json:"level"`
	HasChildren bool   `json:"has_children"`
}

// ExportEdge 是可视化输出的边，仅包含正向关系。
type ExportEdge struct {
	Source   string              `json:"source"`
	Target   string              `json:"target"`
	Type     domain.RelationType `json:"type"`
	Metadata map[string]any      `json:"metadata,omitempty"`
}

// Export 是整张图的节点/边投影。
type Export struct {
	Nodes []ExportNode `json:"nodes"`
	Edges []ExportEdge `json:"edges"`
}

// ExportForVisualization 导出节点（带层级信息）和正向边。
func (g *Graph) ExportForVisualization() Export {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := Export{
		Nodes: make([]ExportNode, 0, len(g.order)),
		Edges: make([]ExportEdge, 0, len(g.forward)),
	}
	for _, guid := range g.order {
		out.Nodes = append(out.Nodes, ExportNode{
			ID:          guid,
			Level:       g.levelLocked(guid),
			HasChildren: len(g.childrenLocked(guid)) > 0,
		})
	}
	for _, rel := range g.forward {
		out.Edges = append(out.Edges, ExportEdge{
			Source:   rel.Source,
			Target:   rel.Target,
			Type:     rel.Type,
			Metadata: rel.Metadata,
		})
	}
	return out
}
