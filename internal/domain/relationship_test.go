package domain

import (
	"errors"
	"testing"
)

func TestDefaultRegistryInverses(t *testing.T) {
	r := DefaultRegistry()
	for _, p := range DefaultPairs() {
		inv, err := r.InverseOf(p.Type)
		if err != nil || inv != p.Inverse {
			t.Fatalf("inverse of %s: got %s, %v", p.Type, inv, err)
		}
		back, err := r.InverseOf(p.Inverse)
		if err != nil || back != p.Type {
			t.Fatalf("inverse of %s: got %s, %v", p.Inverse, back, err)
		}
	}
	if len(r.Types()) != len(DefaultPairs())*2 {
		t.Fatalf("unexpected type count %d", len(r.Types()))
	}
}

func TestRegistryRejectsUnknownType(t *testing.T) {
	r := DefaultRegistry()
	if r.IsValid("OWNS") {
		t.Fatalf("OWNS should not be registered")
	}
	if _, err := r.InverseOf("OWNS"); !errors.Is(err, ErrUnknownRelationType) {
		t.Fatalf("expected ErrUnknownRelationType, got %v", err)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	cases := []struct {
		name  string
		pairs []Pair
		ok    bool
	}{
		{name: "self inverse", pairs: []Pair{{Type: "PEERS", Inverse: "PEERS"}}},
		{name: "empty", pairs: []Pair{{Type: "", Inverse: "X"}}},
		{name: "conflict", pairs: []Pair{{Type: "A", Inverse: "B"}, {Type: "A", Inverse: "C"}}},
		{name: "repeat same pair", pairs: []Pair{{Type: "A", Inverse: "B"}, {Type: "B", Inverse: "A"}}, ok: true},
		{name: "extra pair", pairs: append(DefaultPairs(), Pair{Type: "REPLICATES_TO", Inverse: "REPLICATED_FROM"}), ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.pairs...)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEntityGUID(t *testing.T) {
	cluster := EntityGUID(EntityTypeCluster, "123", "prod", nil)
	if cluster != "123|INFRA|AWSMSKCLUSTER|cHJvZDoxMjM=" {
		t.Fatalf("unexpected cluster guid %s", cluster)
	}
	broker := EntityGUID(EntityTypeBroker, "123", "prod", 1)
	if broker != "123|INFRA|AWSMSKBROKER|cHJvZDoxMjM6MQ==" {
		t.Fatalf("unexpected broker guid %s", broker)
	}
}

func TestLabelPattern(t *testing.T) {
	pattern := LabelPattern([]string{"Topic", "Entity"})
	if pattern != ":`Entity`:`Topic`" {
		t.Fatalf("unexpected pattern %s", pattern)
	}
	if got := LabelPattern([]string{"a`b"}); got != ":`a``b`" {
		t.Fatalf("backtick not escaped: %s", got)
	}
}

func TestIsIdentifier(t *testing.T) {
	cases := map[string]bool{
		"AWSMSKBROKER": true,
		"_x1":          true,
		"KAFKA-BROKER": false,
		"1abc":         false,
		"":             false,
		"X SET n.a=1":  false,
	}
	for in, want := range cases {
		if got := IsIdentifier(in); got != want {
			t.Fatalf("IsIdentifier(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEntityTypeOf(t *testing.T) {
	guid := EntityGUID(EntityTypeTopic, "123", "prod", "orders")
	if got := EntityTypeOf(guid); got != EntityTypeTopic {
		t.Fatalf("EntityTypeOf(%q) = %q", guid, got)
	}
	if got := EntityTypeOf("plain-guid"); got != "" {
		t.Fatalf("expected empty type, got %q", got)
	}
}
