package main

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"entitygraph/internal/domain"
	"entitygraph/internal/graph"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--topology", "testdata/topology.yaml"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	out, err := run(t, "build")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cluster := domain.EntityGUID(domain.EntityTypeCluster, "123", "prod", nil)
	if !strings.Contains(out, cluster) || !strings.Contains(out, "CONSUMES_FROM") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, pattern := range []string{`total_entities\s+│\s+6\s+│`, `CONTAINS\s+│\s+5\s+│`} {
		if !regexp.MustCompile(pattern).MatchString(out) {
			t.Fatalf("missing %s in:\n%s", pattern, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "orphaned_target") {
		t.Fatalf("expected orphaned topics in:\n%s", out)
	}
	if _, err := run(t, "validate", "--fail-on-issues"); err == nil {
		t.Fatalf("expected error with --fail-on-issues")
	}
}

func TestRelatedAndHierarchyCommands(t *testing.T) {
	topic := domain.EntityGUID(domain.EntityTypeTopic, "123", "prod", "orders")
	out, err := run(t, "related", topic, "--type", "SERVED_BY")
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if strings.Count(out, "SERVED_BY") != 2 {
		t.Fatalf("expected two serving brokers:\n%s", out)
	}

	out, err = run(t, "hierarchy", topic)
	if err != nil {
		t.Fatalf("hierarchy: %v", err)
	}
	if !strings.Contains(out, domain.EntityGUID(domain.EntityTypeCluster, "123", "prod", nil)) {
		t.Fatalf("expected cluster as parent:\n%s", out)
	}

	if _, err := run(t, "hierarchy"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestExportCommand(t *testing.T) {
	out, err := run(t, "export", "--compact")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var export graph.Export
	if err := json.Unmarshal([]byte(out), &export); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(export.Nodes) != 6 || len(export.Edges) != 11 {
		t.Fatalf("unexpected export: %d nodes %d edges", len(export.Nodes), len(export.Edges))
	}
}

func TestMissingTopology(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--topology", "testdata/missing.yaml", "stats"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing topology")
	}
}
