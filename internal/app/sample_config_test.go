package app

import (
	"context"
	"path/filepath"
	"testing"

	"entitygraph/internal/graph"
	"entitygraph/internal/topology"
)

func TestShippedConfigs(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	gc, err := cfg.Graph.Build()
	if err != nil {
		t.Fatalf("graph config: %v", err)
	}
	g, err := graph.New(gc, nil)
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}
	src := topology.NewFileSource(filepath.Join("..", "..", cfg.Topology.Path))
	report, err := NewService(g, src, nil, nil, nil).Rebuild(context.Background())
	if err != nil {
		t.Fatalf("rebuild from shipped topology: %v", err)
	}
	if report.Stats.TotalEntities != 9 || report.Stats.HierarchyDepth != 1 {
		t.Fatalf("unexpected stats %+v", report.Stats)
	}
	for _, c := range report.Clusters {
		if len(c.Unresolved) != 0 {
			t.Fatalf("shipped topology has unresolved refs: %v", c.Unresolved)
		}
	}
}
