package graph

import (
	"sort"
	"strings"

	"entitygraph/internal/domain"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// IssueKind 表示结构问题的种类。
type IssueKind string

const (
	IssueOrphanedTarget    IssueKind = "orphaned_target"
	IssueCircularHierarchy IssueKind = "circular_hierarchy"
)

// Issue 是一次校验发现的结构问题。
type Issue struct {
	Kind             IssueKind           `json:"type"`
	SourceGUID       string              `json:"source_guid,omitempty"`
	TargetGUID       string              `json:"target_guid,omitempty"`
	RelationshipType domain.RelationType `json:"relationship_type,omitempty"`
	Cycle            []string            `json:"cycle,omitempty"`
}

// ValidateRelationships 扫描孤立关系和层级环，问题以数据形式返回。
func (g *Graph) ValidateRelationships() []Issue {
	g.mu.RLock()
	defer g.mu.RUnlock()

	issues := []Issue{}
	for _, rel := range g.forward {
		if g.hasOutgoingLocked(rel.Target) {
			continue
		}
		issues = append(issues, Issue{
			Kind:             IssueOrphanedTarget,
			SourceGUID:       rel.Source,
			TargetGUID:       rel.Target,
			RelationshipType: rel.Type,
		})
	}
	return append(issues, g.hierarchyCyclesLocked()...)
}

// hierarchyCyclesLocked 在层级关系子图上找出全部简单环。
// 环以闭合路径表示，首尾为同一实体；自包含记为 [A, A]。
func (g *Graph) hierarchyCyclesLocked() []Issue {
	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64)
	var names []string
	idOf := func(guid string) int64 {
		if id, ok := ids[guid]; ok {
			return id
		}
		id := int64(len(names))
		ids[guid] = id
		names = append(names, guid)
		dg.AddNode(simple.Node(id))
		return id
	}

	var cycles [][]string
	selfLoops := make(map[string]struct{})
	for _, rel := range g.forward {
		if !g.isHierarchyType(rel.Type) {
			continue
		}
		if rel.Source == rel.Target {
			if _, seen := selfLoops[rel.Source]; !seen {
				selfLoops[rel.Source] = struct{}{}
				cycles = append(cycles, []string{rel.Source, rel.Source})
			}
			continue
		}
		from, to := idOf(rel.Source), idOf(rel.Target)
		if dg.HasEdgeFromTo(from, to) {
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(from), simple.Node(to)))
	}

	for _, c := range topo.DirectedCyclesIn(dg) {
		path := make([]string, len(c))
		for i, n := range c {
			path[i] = names[n.ID()]
		}
		cycles = append(cycles, path)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], "\x00") < strings.Join(cycles[j], "\x00")
	})

	issues := make([]Issue, 0, len(cycles))
	for _, c := range cycles {
		issues = append(issues, Issue{Kind: IssueCircularHierarchy, Cycle: c})
	}
	return issues
}
