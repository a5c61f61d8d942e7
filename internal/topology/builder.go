package topology

import (
	"fmt"
	"strings"

	"entitygraph/internal/domain"
	"go.uber.org/zap"
)

// Writer 是建图所需的最小写接口。
type Writer interface {
	AddRelationship(source, target string, relType domain.RelationType, metadata map[string]any) error
}

// BuildResult 汇总一次建图写入的关系数量。
type BuildResult struct {
	ClusterGUID   string   `json:"cluster_guid"`
	Contains      int      `json:"contains"`
	Serves        int      `json:"serves"`
	ConsumesFrom  int      `json:"consumes_from"`
	CoordinatedBy int      `json:"coordinated_by"`
	Unresolved    []string `json:"unresolved,omitempty"`
}

// Total 返回写入的关系总数。
func (r BuildResult) Total() int {
	return r.Contains + r.Serves + r.ConsumesFrom + r.CoordinatedBy
}

type plannedEdge struct {
	source   string
	target   string
	relType  domain.RelationType
	metadata map[string]any
}

// Builder 把集群描述展开成一组类型化关系。
type Builder struct {
	graph  Writer
	logger *zap.Logger
}

// NewBuilder 创建建图器。
func NewBuilder(graph Writer, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{graph: graph, logger: logger}
}

// BuildClusterHierarchy 写入包含、服务、消费、协调关系。
// 先规划全部边并校验 GUID，校验通过后才写入；不去重，也不删除旧边。
func (b *Builder) BuildClusterHierarchy(clusterGUID string, entities ClusterEntities) (BuildResult, error) {
	res := BuildResult{ClusterGUID: clusterGUID}
	if b.graph == nil {
		return res, fmt.Errorf("builder 未绑定关系图")
	}
	if strings.TrimSpace(clusterGUID) == "" {
		return res, fmt.Errorf("%w: cluster guid", domain.ErrMissingIdentifier)
	}

	edges, unresolved, err := plan(clusterGUID, entities)
	if err != nil {
		return res, err
	}
	res.Unresolved = unresolved

	for _, e := range edges {
		if err := b.graph.AddRelationship(e.source, e.target, e.relType, e.metadata); err != nil {
			return res, fmt.Errorf("写入关系失败 %s -[%s]-> %s: %w", e.source, e.relType, e.target, err)
		}
		switch e.relType {
		case domain.RelContains:
			res.Contains++
		case domain.RelServes:
			res.Serves++
		case domain.RelConsumesFrom:
			res.ConsumesFrom++
		case domain.RelCoordinatedBy:
			res.CoordinatedBy++
		}
	}

	for _, ref := range unresolved {
		b.logger.Warn("unresolved topology reference", zap.String("cluster", clusterGUID), zap.String("ref", ref))
	}
	b.logger.Info("cluster hierarchy built",
		zap.String("cluster", clusterGUID),
		zap.Int("contains", res.Contains),
		zap.Int("serves", res.Serves),
		zap.Int("consumes_from", res.ConsumesFrom),
		zap.Int("coordinated_by", res.CoordinatedBy))
	return res, nil
}

// Validate 只规划不写入，用于在清空关系图前确认拓扑可以完整构建。
func (b *Builder) Validate(clusterGUID string, entities ClusterEntities) error {
	if strings.TrimSpace(clusterGUID) == "" {
		return fmt.Errorf("%w: cluster guid", domain.ErrMissingIdentifier)
	}
	_, _, err := plan(clusterGUID, entities)
	return err
}

func plan(clusterGUID string, entities ClusterEntities) ([]plannedEdge, []string, error) {
	brokerByRef := make(map[string]string, len(entities.Brokers)*2)
	for i, broker := range entities.Brokers {
		if strings.TrimSpace(broker.GUID) == "" {
			return nil, nil, fmt.Errorf("%w: brokers[%d] id=%q", domain.ErrMissingIdentifier, i, broker.ID)
		}
		brokerByRef[broker.GUID] = broker.GUID
		if broker.ID != "" {
			brokerByRef[broker.ID] = broker.GUID
		}
	}
	topicByRef := make(map[string]string, len(entities.Topics)*2)
	for i, topic := range entities.Topics {
		if strings.TrimSpace(topic.GUID) == "" {
			return nil, nil, fmt.Errorf("%w: topics[%d] name=%q", domain.ErrMissingIdentifier, i, topic.Name)
		}
		topicByRef[topic.GUID] = topic.GUID
		if topic.Name != "" {
			topicByRef[topic.Name] = topic.GUID
		}
	}
	for i, group := range entities.ConsumerGroups {
		if strings.TrimSpace(group.GUID) == "" {
			return nil, nil, fmt.Errorf("%w: consumer_groups[%d] id=%q", domain.ErrMissingIdentifier, i, group.ID)
		}
	}

	total := len(entities.Brokers) + len(entities.Topics) + len(entities.ConsumerGroups)
	edges := make([]plannedEdge, 0, total*2)
	var unresolved []string

	for _, broker := range entities.Brokers {
		edges = append(edges, plannedEdge{clusterGUID, broker.GUID, domain.RelContains, map[string]any{"entity_type": "broker"}})
	}
	for _, topic := range entities.Topics {
		meta := map[string]any{"entity_type": "topic"}
		if topic.Partitions > 0 {
			meta["partitions"] = topic.Partitions
		}
		if topic.ReplicationFactor > 0 {
			meta["replication_factor"] = topic.ReplicationFactor
		}
		edges = append(edges, plannedEdge{clusterGUID, topic.GUID, domain.RelContains, meta})
	}
	for _, group := range entities.ConsumerGroups {
		edges = append(edges, plannedEdge{clusterGUID, group.GUID, domain.RelContains, map[string]any{"entity_type": "consumer_group"}})
	}

	for _, topic := range entities.Topics {
		leader := brokerByRef[topic.Leader]
		for _, ref := range brokerRefs(topic) {
			brokerGUID, ok := brokerByRef[ref]
			if !ok {
				unresolved = append(unresolved, fmt.Sprintf("topic %s: broker %s", topicLabel(topic), ref))
				continue
			}
			edges = append(edges, plannedEdge{brokerGUID, topic.GUID, domain.RelServes, map[string]any{"leader": brokerGUID == leader}})
		}
	}

	for _, group := range entities.ConsumerGroups {
		for _, ref := range group.Topics {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				continue
			}
			target, ok := topicByRef[ref]
			if !ok {
				target = ref
				unresolved = append(unresolved, fmt.Sprintf("consumer group %s: topic %s", group.GUID, ref))
			}
			edges = append(edges, plannedEdge{group.GUID, target, domain.RelConsumesFrom, nil})
		}
		if ref := strings.TrimSpace(group.Coordinator.ID); ref != "" {
			target, ok := brokerByRef[ref]
			if !ok {
				target = ref
				unresolved = append(unresolved, fmt.Sprintf("consumer group %s: coordinator %s", group.GUID, ref))
			}
			edges = append(edges, plannedEdge{group.GUID, target, domain.RelCoordinatedBy, nil})
		}
	}
	return edges, unresolved, nil
}

// brokerRefs 合并 leader 与副本列表，保持顺序去重。
func brokerRefs(topic Topic) []string {
	var refs []string
	seen := make(map[string]struct{})
	for _, ref := range append([]string{topic.Leader}, topic.Replicas...) {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

func topicLabel(topic Topic) string {
	if topic.Name != "" {
		return topic.Name
	}
	return topic.GUID
}
