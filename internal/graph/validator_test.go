package graph

import (
	"testing"

	"entitygraph/internal/domain"
)

func issuesOfKind(issues []Issue, kind IssueKind) []Issue {
	var res []Issue
	for _, is := range issues {
		if is.Kind == kind {
			res = append(res, is)
		}
	}
	return res
}

func TestValidateReportsOrphanedTarget(t *testing.T) {
	g := newTestGraph(t)
	if err := g.AddRelationship("cluster", "UNREGISTERED_GUID", domain.RelContains, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	issues := g.ValidateRelationships()
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %+v", issues)
	}
	is := issues[0]
	if is.Kind != IssueOrphanedTarget || is.TargetGUID != "UNREGISTERED_GUID" || is.SourceGUID != "cluster" {
		t.Fatalf("unexpected issue %+v", is)
	}
}

func TestValidateCleanChainHasNoCycle(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddRelationship("cluster", "broker", domain.RelContains, nil)
	_ = g.AddRelationship("broker", "topic", domain.RelServes, nil)
	_ = g.AddRelationship("topic", "cluster", domain.RelServes, nil)

	issues := g.ValidateRelationships()
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestValidateReportsCircularHierarchy(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddRelationship("A", "B", domain.RelContains, nil)
	_ = g.AddRelationship("B", "C", domain.RelContains, nil)
	_ = g.AddRelationship("C", "A", domain.RelContains, nil)

	cycles := issuesOfKind(g.ValidateRelationships(), IssueCircularHierarchy)
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle, got %+v", cycles)
	}
	c := cycles[0].Cycle
	if len(c) != 4 || c[0] != c[len(c)-1] {
		t.Fatalf("expected closed path of 3 entities, got %v", c)
	}
	members := map[string]bool{}
	for _, guid := range c {
		members[guid] = true
	}
	if !members["A"] || !members["B"] || !members["C"] {
		t.Fatalf("cycle misses members: %v", c)
	}

	if h := g.Hierarchy("A"); len(h.Descendants) != 2 {
		t.Fatalf("hierarchy should still terminate, got %+v", h)
	}
}

func TestValidateReportsSelfContainment(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddRelationship("A", "A", domain.RelContains, nil)
	_ = g.AddRelationship("A", "A", domain.RelContains, nil)

	cycles := issuesOfKind(g.ValidateRelationships(), IssueCircularHierarchy)
	if len(cycles) != 1 || len(cycles[0].Cycle) != 2 {
		t.Fatalf("expected single self cycle, got %+v", cycles)
	}
}

func TestValidateOnlyChecksHierarchyTypesForCycles(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddRelationship("A", "B", domain.RelManages, nil)
	_ = g.AddRelationship("B", "A", domain.RelManages, nil)
	if cycles := issuesOfKind(g.ValidateRelationships(), IssueCircularHierarchy); len(cycles) != 0 {
		t.Fatalf("MANAGES is not a hierarchy type by default, got %+v", cycles)
	}

	cfg := DefaultConfig()
	cfg.HierarchyTypes = []domain.RelationType{domain.RelContains, domain.RelManages}
	g2, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}
	_ = g2.AddRelationship("A", "B", domain.RelManages, nil)
	_ = g2.AddRelationship("B", "A", domain.RelManages, nil)
	if cycles := issuesOfKind(g2.ValidateRelationships(), IssueCircularHierarchy); len(cycles) != 1 {
		t.Fatalf("expected one cycle with MANAGES configured, got %+v", cycles)
	}
}
