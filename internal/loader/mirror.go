package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entitygraph/internal/cypher"
	"entitygraph/internal/graph"
	"go.uber.org/zap"
)

// ErrCountMismatch 表示回读的数量与写入不一致。
var ErrCountMismatch = errors.New("neo4j 回读数量不一致")

// Options 控制写入批次与并发。
type Options struct {
	BatchSize int `yaml:"batch_size"`
	Workers   int `yaml:"parallel_workers"`
}

// Result 是一次镜像写入的汇总。
type Result struct {
	RunID string `json:"run_id"`
	Nodes int    `json:"nodes"`
	Rels  int    `json:"rels"`
}

// Mirror 把内存图整体同步到 Neo4j。
type Mirror struct {
	client  Runner
	schema  *SchemaManager
	nodes   *NodeUpserter
	rels    *RelUpserter
	cleaner *Cleaner
	logger  *zap.Logger
}

// NewMirror 创建镜像写入器。
func NewMirror(client Runner, opts Options, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{
		client:  client,
		schema:  NewSchemaManager(client),
		nodes:   NewNodeUpserter(client, opts.BatchSize),
		rels:    NewRelUpserter(client, opts.BatchSize, opts.Workers),
		cleaner: NewCleaner(client),
		logger:  logger,
	}
}

// Sync 依次执行 schema、节点、关系、清理和回读校验。
func (m *Mirror) Sync(ctx context.Context, export graph.Export, runID string) (Result, error) {
	res := Result{RunID: runID}
	if runID == "" {
		return res, fmt.Errorf("run id 不能为空")
	}
	start := time.Now()
	nodes, rels := BuildRows(export, runID, start.UTC())

	if err := m.schema.Ensure(ctx); err != nil {
		return res, err
	}
	if err := m.nodes.UpsertNodes(ctx, nodes); err != nil {
		return res, err
	}
	if err := m.rels.UpsertRels(ctx, rels); err != nil {
		return res, err
	}
	if err := m.cleaner.Cleanup(ctx, runID); err != nil {
		return res, err
	}

	row, err := m.client.ReadSingle(ctx, cypher.MustAsset("count.cql"), map[string]any{"run_id": runID})
	if err != nil {
		return res, fmt.Errorf("回读数量失败: %w", err)
	}
	res.Nodes = toInt(row["nodes"])
	res.Rels = toInt(row["rels"])
	if res.Nodes != len(nodes) || res.Rels != len(rels) {
		return res, fmt.Errorf("%w: nodes %d/%d rels %d/%d", ErrCountMismatch, res.Nodes, len(nodes), res.Rels, len(rels))
	}

	m.logger.Info("neo4j mirror synced",
		zap.String("run_id", runID),
		zap.Int("nodes", res.Nodes),
		zap.Int("rels", res.Rels),
		zap.Duration("cost", time.Since(start)))
	return res, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
