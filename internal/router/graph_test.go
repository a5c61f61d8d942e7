package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"entitygraph/internal/app"
	"entitygraph/internal/graph"
	"entitygraph/internal/metrics"
	"entitygraph/internal/topology"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestEngine(t *testing.T) (*gin.Engine, *app.Service) {
	t.Helper()
	g, err := graph.New(graph.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}
	m := metrics.New()
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)
	src := &topology.StaticSource{Topology: topology.Topology{
		RunID:     "run-1",
		AccountID: "1",
		Clusters: []topology.Cluster{{
			GUID: "cluster",
			ClusterEntities: topology.ClusterEntities{
				Brokers: []topology.Broker{{GUID: "b1", ID: "1"}},
				Topics:  []topology.Topic{{GUID: "t1", Name: "orders", Leader: "1"}},
			},
		}},
	}}
	svc := app.NewService(g, src, nil, m, nil)
	return NewEngine(NewGraphHandler(svc, nil), reg), svc
}

func do(engine *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAddRelationshipAndQuery(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := do(engine, http.MethodPost, "/api/v1/relationships", gin.H{
		"source_guid": "cluster", "target_guid": "broker", "type": "CONTAINS", "metadata": gin.H{"az": "a"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: %d %s", rec.Code, rec.Body)
	}

	rec = do(engine, http.MethodGet, "/api/v1/relationships/by-type?guid=broker&type=CONTAINED_IN&direction=incoming", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("by-type: %d %s", rec.Code, rec.Body)
	}
	var rels []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rels); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rels) != 1 || rels[0]["target"] != "cluster" {
		t.Fatalf("unexpected inverse view: %s", rec.Body)
	}

	rec = do(engine, http.MethodGet, "/api/v1/hierarchy?guid=broker", nil)
	var h graph.Hierarchy
	_ = json.Unmarshal(rec.Body.Bytes(), &h)
	if h.Level != 1 || h.Parent != "cluster" {
		t.Fatalf("unexpected hierarchy: %s", rec.Body)
	}
}

func TestAddRelationshipRejectsBadInput(t *testing.T) {
	engine, svc := newTestEngine(t)
	cases := []gin.H{
		{"source_guid": "a", "target_guid": "b", "type": "OWNS"},
		{"source_guid": "", "target_guid": "b", "type": "CONTAINS"},
	}
	for _, body := range cases {
		if rec := do(engine, http.MethodPost, "/api/v1/relationships", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, rec.Code)
		}
	}
	if svc.Graph.Stats().TotalRelationships != 0 {
		t.Fatalf("graph should be unchanged")
	}
}

func TestQueryParamValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	targets := []string{
		"/api/v1/relationships",
		"/api/v1/relationships/by-type?guid=a&type=NOPE",
		"/api/v1/relationships/by-type?guid=a&type=CONTAINS&direction=sideways",
		"/api/v1/related?guid=a&depth=two",
	}
	for _, target := range targets {
		if rec := do(engine, http.MethodGet, target, nil); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestRebuildRelatedAndExport(t *testing.T) {
	engine, _ := newTestEngine(t)

	if rec := do(engine, http.MethodPost, "/api/v1/graph/rebuild", nil); rec.Code != http.StatusOK {
		t.Fatalf("rebuild: %d %s", rec.Code, rec.Body)
	}

	rec := do(engine, http.MethodGet, "/api/v1/related?guid=t1&type=SERVED_BY,CONTAINED_IN&depth=1", nil)
	var related []graph.RelatedEntity
	if err := json.Unmarshal(rec.Body.Bytes(), &related); err != nil {
		t.Fatalf("decode related: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected broker and cluster, got %s", rec.Body)
	}

	rec = do(engine, http.MethodGet, "/api/v1/graph/export", nil)
	etag := rec.Header().Get("ETag")
	if rec.Code != http.StatusOK || etag == "" {
		t.Fatalf("export: %d etag=%q", rec.Code, etag)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/graph/export", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	engine.ServeHTTP(cached, req)
	if cached.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", cached.Code)
	}

	rec = do(engine, http.MethodGet, "/api/v1/graph/validate", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "orphaned_target") {
		t.Fatalf("validate: %d %s", rec.Code, rec.Body)
	}

	rec = do(engine, http.MethodGet, "/metrics", nil)
	if !strings.Contains(rec.Body.String(), "entitygraph_entities 3") {
		t.Fatalf("metrics not exported: %s", rec.Body)
	}
}

func TestBuildClusterAndClear(t *testing.T) {
	engine, svc := newTestEngine(t)

	rec := do(engine, http.MethodPost, "/api/v1/clusters/hierarchy", gin.H{
		"cluster_guid": "c",
		"entities": gin.H{
			"brokers":         []gin.H{{"guid": "b1", "id": "1"}, {"guid": "b2", "id": "2"}},
			"topics":          []gin.H{{"guid": "t1", "name": "t1", "leader": "1"}},
			"consumer_groups": []gin.H{{"guid": "cg", "topics": []string{"t1"}, "coordinator": gin.H{"id": "2"}}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("build: %d %s", rec.Code, rec.Body)
	}
	var res topology.BuildResult
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Contains != 4 || res.Serves != 1 || res.ConsumesFrom != 1 || res.CoordinatedBy != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	if rec := do(engine, http.MethodPost, "/api/v1/clusters/hierarchy", gin.H{"cluster_guid": ""}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank cluster, got %d", rec.Code)
	}

	rec = do(engine, http.MethodGet, "/api/v1/graph/stats", nil)
	var stats graph.Stats
	_ = json.Unmarshal(rec.Body.Bytes(), &stats)
	if stats.TotalEntities != 5 || stats.TotalRelationships != 7 {
		t.Fatalf("unexpected stats: %s", rec.Body)
	}

	if rec := do(engine, http.MethodDelete, "/api/v1/graph", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", rec.Code)
	}
	if svc.Graph.Stats().TotalEntities != 0 {
		t.Fatalf("graph not cleared")
	}
	if rec := do(engine, http.MethodPost, "/api/v1/graph/publish", nil); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 when mirror disabled, got %d", rec.Code)
	}
}
