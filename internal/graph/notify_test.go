package graph

import (
	"sync"
	"testing"
	"time"

	"entitygraph/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRelationshipAddedEvent(t *testing.T) {
	g := newTestGraph(t)
	var events []Event
	g.Subscribe(ListenerFunc(func(e Event) { events = append(events, e) }))

	meta := map[string]any{"leader": true}
	if err := g.AddRelationship("broker", "topic", domain.RelServes, meta); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Kind != EventRelationshipAdded || e.ID == "" || e.At.IsZero() {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.Relationship == nil || e.Relationship.Source != "broker" || e.Relationship.Type != domain.RelServes {
		t.Fatalf("event should carry the forward edge, got %+v", e.Relationship)
	}
}

func TestListenerCanReadGraph(t *testing.T) {
	g := newTestGraph(t)
	var seen int
	g.Subscribe(ListenerFunc(func(Event) { seen = g.Stats().TotalRelationships }))
	_ = g.AddRelationship("a", "b", domain.RelContains, nil)
	if seen != 1 {
		t.Fatalf("listener should observe the completed mutation, got %d", seen)
	}
}

func TestUnsubscribe(t *testing.T) {
	g := newTestGraph(t)
	var count int
	cancel := g.Subscribe(ListenerFunc(func(Event) { count++ }))
	_ = g.AddRelationship("a", "b", domain.RelContains, nil)
	cancel()
	cancel()
	_ = g.AddRelationship("a", "c", domain.RelContains, nil)
	if count != 1 {
		t.Fatalf("expected 1 delivery before unsubscribe, got %d", count)
	}
}

func TestEventsFollowMutationOrder(t *testing.T) {
	var g *Graph
	clearDone := make(chan struct{})
	var once sync.Once
	// 在写入完成、事件发出之前并发清空。
	hook := func(e zapcore.Entry) error {
		if e.Message != "relationship added" {
			return nil
		}
		once.Do(func() {
			go func() {
				g.Clear()
				close(clearDone)
			}()
			select {
			case <-clearDone:
			case <-time.After(50 * time.Millisecond):
			}
		})
		return nil
	}
	core, _ := observer.New(zapcore.DebugLevel)
	var err error
	g, err = New(DefaultConfig(), zap.New(zapcore.RegisterHooks(core, hook)))
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}

	var mu sync.Mutex
	var kinds []EventKind
	g.Subscribe(ListenerFunc(func(e Event) {
		mu.Lock()
		kinds = append(kinds, e.Kind)
		mu.Unlock()
	}))

	if err := g.AddRelationship("cluster", "broker", domain.RelContains, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	<-clearDone

	mu.Lock()
	defer mu.Unlock()
	if len(kinds) != 2 || kinds[0] != EventRelationshipAdded || kinds[1] != EventCleared {
		t.Fatalf("events out of mutation order: %v", kinds)
	}
	if got := g.Stats().TotalRelationships; got != 0 {
		t.Fatalf("graph should be empty after clear, got %d relationships", got)
	}
}
