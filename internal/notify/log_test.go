package notify

import (
	"testing"

	"entitygraph/internal/domain"
	"entitygraph/internal/graph"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogListener(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewLogListener(zap.New(core))

	l.OnGraphEvent(graph.Event{ID: "1", Kind: graph.EventRelationshipAdded, Relationship: &domain.Relationship{Source: "a", Target: "b", Type: domain.RelContains}})
	l.OnGraphEvent(graph.Event{ID: "2", Kind: graph.EventCleared})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zap.DebugLevel || entries[0].ContextMap()["target"] != "b" {
		t.Fatalf("unexpected relationship log: %+v", entries[0])
	}
	if entries[1].Level != zap.InfoLevel || entries[1].ContextMap()["kind"] != "cleared" {
		t.Fatalf("unexpected clear log: %+v", entries[1])
	}
}
