package metrics

import (
	"time"

	"entitygraph/internal/graph"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 汇总关系图的监控指标。
type Metrics struct {
	Entities            prometheus.Gauge
	Relationships       prometheus.Gauge
	RelationshipsByType *prometheus.GaugeVec
	HierarchyDepth      prometheus.Gauge
	Issues              *prometheus.GaugeVec
	RebuildDuration     prometheus.Histogram
	RebuildErrors       prometheus.Counter
}

// New 创建指标，尚未注册。
func New() *Metrics {
	return &Metrics{
		Entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "entitygraph_entities",
			Help: "图中实体数",
		}),
		Relationships: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "entitygraph_relationships",
			Help: "正向关系数",
		}),
		RelationshipsByType: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "entitygraph_relationships_by_type",
			Help: "按类型统计的正向关系数",
		}, []string{"type"}),
		HierarchyDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "entitygraph_hierarchy_depth",
			Help: "最大层级深度",
		}),
		Issues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "entitygraph_validation_issues",
			Help: "最近一次校验发现的问题数",
		}, []string{"kind"}),
		RebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "entitygraph_rebuild_duration_seconds",
			Help:    "单次重建耗时",
			Buckets: prometheus.DefBuckets,
		}),
		RebuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "entitygraph_rebuild_errors_total",
			Help: "重建失败次数",
		}),
	}
}

// MustRegister 注册全部指标。
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		m.Entities,
		m.Relationships,
		m.RelationshipsByType,
		m.HierarchyDepth,
		m.Issues,
		m.RebuildDuration,
		m.RebuildErrors,
	)
}

// Observe 用最新的统计和校验结果覆盖指标。
func (m *Metrics) Observe(stats graph.Stats, issues []graph.Issue) {
	m.Entities.Set(float64(stats.TotalEntities))
	m.Relationships.Set(float64(stats.TotalRelationships))
	m.HierarchyDepth.Set(float64(stats.HierarchyDepth))

	m.RelationshipsByType.Reset()
	for t, n := range stats.RelationshipCounts {
		m.RelationshipsByType.WithLabelValues(string(t)).Set(float64(n))
	}

	counts := map[graph.IssueKind]int{
		graph.IssueOrphanedTarget:    0,
		graph.IssueCircularHierarchy: 0,
	}
	for _, issue := range issues {
		counts[issue.Kind]++
	}
	for kind, n := range counts {
		m.Issues.WithLabelValues(string(kind)).Set(float64(n))
	}
}

// ObserveRebuild 记录一次重建的耗时和结果。
func (m *Metrics) ObserveRebuild(cost time.Duration, err error) {
	m.RebuildDuration.Observe(cost.Seconds())
	if err != nil {
		m.RebuildErrors.Inc()
	}
}
