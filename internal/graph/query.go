package graph

import "entitygraph/internal/domain"

// RelatedEntity 是遍历结果中的一个实体。
type RelatedEntity struct {
	EntityGUID       string              `json:"entity_guid"`
	RelationshipType domain.RelationType `json:"relationship_type"`
	Distance         int                 `json:"distance"`
}

// RelatedEntities 从 guid 出发做广度优先遍历，同时走正向和逆向关系。
// typeFilter 为空表示不过滤；每个实体只报告一次，标注首次到达时的关系类型和跳数。
func (g *Graph) RelatedEntities(guid string, typeFilter []domain.RelationType, depth int) []RelatedEntity {
	if depth < 1 {
		depth = 1
	}
	var allowed map[domain.RelationType]struct{}
	if len(typeFilter) > 0 {
		allowed = make(map[domain.RelationType]struct{}, len(typeFilter))
		for _, t := range typeFilter {
			allowed[t] = struct{}{}
		}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	result := []RelatedEntity{}
	visited := map[string]struct{}{guid: {}}
	frontier := []string{guid}
	for distance := 1; distance <= depth && len(frontier) > 0; distance++ {
		var next []string
		for _, cur := range frontier {
			e, ok := g.entities[cur]
			if !ok {
				continue
			}
			for _, t := range g.types {
				if allowed != nil {
					if _, ok := allowed[t]; !ok {
						continue
					}
				}
				for _, bucket := range [][]domain.Relationship{e.outgoing[t], e.incoming[t]} {
					for _, rel := range bucket {
						if _, seen := visited[rel.Target]; seen {
							continue
						}
						visited[rel.Target] = struct{}{}
						result = append(result, RelatedEntity{
							EntityGUID:       rel.Target,
							RelationshipType: t,
							Distance:         distance,
						})
						next = append(next, rel.Target)
					}
				}
			}
		}
		frontier = next
	}
	return result
}
