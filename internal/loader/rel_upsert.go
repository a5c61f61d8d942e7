package loader

import (
	"context"
	"fmt"
	"sort"

	"entitygraph/internal/cypher"
	"entitygraph/internal/domain"
	"entitygraph/pkg/util"
	"golang.org/x/sync/errgroup"
)

// RelUpserter 负责关系批量写入，不同关系类型并行写。
type RelUpserter struct {
	client    Runner
	batchSize int
	workers   int
}

func NewRelUpserter(client Runner, batchSize, workers int) *RelUpserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	if workers <= 0 {
		workers = 1
	}
	return &RelUpserter{client: client, batchSize: batchSize, workers: workers}
}

func (u *RelUpserter) UpsertRels(ctx context.Context, rows []domain.RelRow) error {
	if len(rows) == 0 {
		return nil
	}
	grouped := make(map[domain.RelationType][]domain.RelRow)
	for _, row := range rows {
		grouped[row.Type] = append(grouped[row.Type], row)
	}
	types := make([]domain.RelationType, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(u.workers)
	for _, relType := range types {
		batch := grouped[relType]
		eg.Go(func() error {
			query := cypher.MustTemplate("upsert_rels.cql", map[string]string{"RelType": ":" + domain.QuoteIdentifier(string(relType))})
			for _, chunk := range util.Chunk(batch, u.batchSize) {
				params := map[string]any{"rows": toRelParameters(chunk)}
				if err := u.client.RunWrite(ctx, query, params); err != nil {
					return fmt.Errorf("写入关系失败 type=%s: %w", relType, err)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

func toRelParameters(rows []domain.RelRow) []map[string]any {
	res := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		res = append(res, map[string]any{
			"start_guid": row.StartGUID,
			"end_guid":   row.EndGUID,
			"ordinal":    row.Ordinal,
			"properties": row.Properties,
			"run_id":     row.RunID,
		})
	}
	return res
}
