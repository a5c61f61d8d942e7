package topology

import (
	"context"
	"time"

	"entitygraph/internal/domain"
)

// Source 抽象拓扑数据源。
type Source interface {
	FetchTopology(ctx context.Context) (Topology, error)
}

// StaticSource 直接返回内存中的拓扑，用于测试或最小实现。
type StaticSource struct {
	Topology Topology
}

// FetchTopology 返回预设拓扑，缺失的 GUID 会按规则补齐。
func (s *StaticSource) FetchTopology(context.Context) (Topology, error) {
	topo := s.Topology
	topo.Clusters = append([]Cluster(nil), s.Topology.Clusters...)
	fillGUIDs(&topo)
	if topo.RunID == "" {
		topo.RunID = newRunID()
	}
	return topo, nil
}

// fillGUIDs 为未提供 GUID 的实体生成 accountId|INFRA|type|base64 形式的 GUID。
func fillGUIDs(topo *Topology) {
	for i := range topo.Clusters {
		c := &topo.Clusters[i]
		name := c.Name
		if name == "" {
			name = c.GUID
		}
		if c.GUID == "" {
			c.GUID = domain.EntityGUID(domain.EntityTypeCluster, topo.AccountID, name, nil)
		}
		c.Brokers = append([]Broker(nil), c.Brokers...)
		for j := range c.Brokers {
			if c.Brokers[j].GUID == "" {
				c.Brokers[j].GUID = domain.EntityGUID(domain.EntityTypeBroker, topo.AccountID, name, c.Brokers[j].ID)
			}
		}
		c.Topics = append([]Topic(nil), c.Topics...)
		for j := range c.Topics {
			if c.Topics[j].GUID == "" {
				c.Topics[j].GUID = domain.EntityGUID(domain.EntityTypeTopic, topo.AccountID, name, c.Topics[j].Name)
			}
		}
		c.ConsumerGroups = append([]ConsumerGroup(nil), c.ConsumerGroups...)
		for j := range c.ConsumerGroups {
			if c.ConsumerGroups[j].GUID == "" {
				c.ConsumerGroups[j].GUID = domain.EntityGUID(domain.EntityTypeConsumerGroup, topo.AccountID, name, c.ConsumerGroups[j].ID)
			}
		}
	}
}

func newRunID() string {
	return time.Now().UTC().Format("20060102T150405Z")
}
