package graph

import (
	"testing"

	"entitygraph/internal/domain"
)

func TestStatsCountsForwardEdgesOnly(t *testing.T) {
	g := buildKafkaGraph(t)
	st := g.Stats()
	if st.TotalEntities != 5 {
		t.Fatalf("expected 5 entities, got %d", st.TotalEntities)
	}
	if st.TotalRelationships != 8 {
		t.Fatalf("expected 8 relationships, got %d", st.TotalRelationships)
	}
	if st.RelationshipCounts[domain.RelContains] != 4 || st.RelationshipCounts[domain.RelServes] != 2 {
		t.Fatalf("unexpected counts %v", st.RelationshipCounts)
	}
	if _, ok := st.RelationshipCounts[domain.RelServedBy]; ok {
		t.Fatalf("inverse types must not be counted: %v", st.RelationshipCounts)
	}
	if st.HierarchyDepth != 1 {
		t.Fatalf("expected depth 1, got %d", st.HierarchyDepth)
	}
}

func TestStatsHierarchyDepth(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddRelationship("region", "cluster", domain.RelContains, nil)
	_ = g.AddRelationship("cluster", "broker", domain.RelContains, nil)
	_ = g.AddRelationship("broker", "topic", domain.RelContains, nil)
	if got := g.Stats().HierarchyDepth; got != 3 {
		t.Fatalf("expected depth 3, got %d", got)
	}
}

func TestExportMatchesStats(t *testing.T) {
	g := buildKafkaGraph(t)
	st := g.Stats()
	exp := g.ExportForVisualization()
	if len(exp.Nodes) != st.TotalEntities {
		t.Fatalf("node count %d != entities %d", len(exp.Nodes), st.TotalEntities)
	}
	if len(exp.Edges) != st.TotalRelationships {
		t.Fatalf("edge count %d != relationships %d", len(exp.Edges), st.TotalRelationships)
	}
	nodes := make(map[string]ExportNode)
	for _, n := range exp.Nodes {
		nodes[n.ID] = n
	}
	if !nodes["cluster"].HasChildren || nodes["cluster"].Level != 0 {
		t.Fatalf("unexpected cluster node %+v", nodes["cluster"])
	}
	if nodes["broker1"].HasChildren || nodes["broker1"].Level != 1 {
		t.Fatalf("unexpected broker node %+v", nodes["broker1"])
	}
	for _, e := range exp.Edges {
		if e.Type == domain.RelServedBy || e.Type == domain.RelContainedIn {
			t.Fatalf("inverse edge exported: %+v", e)
		}
	}
}

func TestEmptyGraphExport(t *testing.T) {
	g := newTestGraph(t)
	exp := g.ExportForVisualization()
	if exp.Nodes == nil || exp.Edges == nil || len(exp.Nodes) != 0 || len(exp.Edges) != 0 {
		t.Fatalf("expected empty non-nil export, got %+v", exp)
	}
}
