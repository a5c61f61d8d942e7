package graph

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"entitygraph/internal/domain"
	"go.uber.org/zap"
)

// Direction 表示按类型查询关系时的方向。
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// Config 控制关系图的类型表和层级判定。
type Config struct {
	Registry       *domain.Registry
	HierarchyTypes []domain.RelationType
}

// DefaultConfig 使用内置类型表，仅 CONTAINS 参与层级计算。
func DefaultConfig() Config {
	return Config{
		Registry:       domain.DefaultRegistry(),
		HierarchyTypes: []domain.RelationType{domain.RelContains},
	}
}

// Relationships 是某个实体的双向关系视图。
type Relationships struct {
	Outgoing map[domain.RelationType][]domain.Relationship `json:"outgoing"`
	Incoming map[domain.RelationType][]domain.Relationship `json:"incoming"`
}

type entity struct {
	outgoing map[domain.RelationType][]domain.Relationship
	incoming map[domain.RelationType][]domain.Relationship
}

func newEntity() *entity {
	return &entity{
		outgoing: make(map[domain.RelationType][]domain.Relationship),
		incoming: make(map[domain.RelationType][]domain.Relationship),
	}
}

// Graph 是内存中的实体关系图，按 GUID 双向索引，再按关系类型分桶。
// 写操作持有写锁，读视图在整个计算期间持有读锁。
// writeMu 串行化“修改 + 通知”，事件顺序与修改顺序一致；监听器可读图，但不能写图。
type Graph struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	registry  *domain.Registry
	types     []domain.RelationType
	hierarchy []domain.RelationType
	inverse   map[domain.RelationType]domain.RelationType
	entities  map[string]*entity
	order     []string
	forward   []domain.Relationship

	notifier *notifier
	logger   *zap.Logger
}

// New 根据配置创建关系图。
func New(cfg Config, logger *zap.Logger) (*Graph, error) {
	if cfg.Registry == nil {
		cfg.Registry = domain.DefaultRegistry()
	}
	if len(cfg.HierarchyTypes) == 0 {
		cfg.HierarchyTypes = []domain.RelationType{domain.RelContains}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	inverse := make(map[domain.RelationType]domain.RelationType, len(cfg.HierarchyTypes))
	for _, t := range cfg.HierarchyTypes {
		inv, err := cfg.Registry.InverseOf(t)
		if err != nil {
			return nil, fmt.Errorf("层级关系类型配置错误: %w", err)
		}
		inverse[t] = inv
	}
	return &Graph{
		registry:  cfg.Registry,
		types:     cfg.Registry.Types(),
		hierarchy: append([]domain.RelationType(nil), cfg.HierarchyTypes...),
		inverse:   inverse,
		entities:  make(map[string]*entity),
		notifier:  newNotifier(),
		logger:    logger,
	}, nil
}

// Registry 返回关系图使用的类型表。
func (g *Graph) Registry() *domain.Registry {
	return g.registry
}

// AddRelationship 写入一条正向关系，并同时写入对端的逆向关系。
// 校验失败时不做任何修改。
func (g *Graph) AddRelationship(source, target string, relType domain.RelationType, metadata map[string]any) error {
	inverse, err := g.registry.InverseOf(relType)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRelationshipType, relType)
	}
	if strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return fmt.Errorf("%w: source=%q target=%q", domain.ErrMissingIdentifier, source, target)
	}

	meta := maps.Clone(metadata)
	fwd := domain.Relationship{Source: source, Target: target, Type: relType, Metadata: meta}
	inv := domain.Relationship{Source: target, Target: source, Type: inverse, Metadata: meta}

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	src := g.ensureLocked(source)
	dst := g.ensureLocked(target)
	src.outgoing[relType] = append(src.outgoing[relType], fwd)
	dst.incoming[inverse] = append(dst.incoming[inverse], inv)
	g.forward = append(g.forward, fwd)
	g.mu.Unlock()

	g.logger.Debug("relationship added",
		zap.String("source", source),
		zap.String("target", target),
		zap.String("type", string(relType)))
	g.notifier.emit(newEvent(EventRelationshipAdded, &fwd))
	return nil
}

func (g *Graph) ensureLocked(guid string) *entity {
	e, ok := g.entities[guid]
	if !ok {
		e = newEntity()
		g.entities[guid] = e
		g.order = append(g.order, guid)
	}
	return e
}

// Relationships 返回实体的全部关系；未知 GUID 返回空结构。
func (g *Graph) Relationships(guid string) Relationships {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res := Relationships{
		Outgoing: make(map[domain.RelationType][]domain.Relationship),
		Incoming: make(map[domain.RelationType][]domain.Relationship),
	}
	e, ok := g.entities[guid]
	if !ok {
		return res
	}
	for t, rels := range e.outgoing {
		res.Outgoing[t] = append([]domain.Relationship(nil), rels...)
	}
	for t, rels := range e.incoming {
		res.Incoming[t] = append([]domain.Relationship(nil), rels...)
	}
	return res
}

// RelationshipsByType 返回指定方向、指定类型的关系，没有时返回空切片。
func (g *Graph) RelationshipsByType(guid string, relType domain.RelationType, dir Direction) []domain.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res := []domain.Relationship{}
	e, ok := g.entities[guid]
	if !ok {
		return res
	}
	switch dir {
	case DirectionIncoming:
		res = append(res, e.incoming[relType]...)
	default:
		res = append(res, e.outgoing[relType]...)
	}
	return res
}

// Entities 按首次出现的顺序返回所有 GUID。
func (g *Graph) Entities() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.order...)
}

// HasEntity 判断 GUID 是否出现在任意关系中。
func (g *Graph) HasEntity(guid string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.entities[guid]
	return ok
}

// Clear 清空整张图。
func (g *Graph) Clear() {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	removed := len(g.forward)
	g.entities = make(map[string]*entity)
	g.order = nil
	g.forward = nil
	g.mu.Unlock()

	g.logger.Debug("graph cleared", zap.Int("relationships", removed))
	g.notifier.emit(newEvent(EventCleared, nil))
}

// Subscribe 注册变更监听器，返回取消函数。
func (g *Graph) Subscribe(l Listener) func() {
	return g.notifier.subscribe(l)
}

func (g *Graph) isHierarchyType(t domain.RelationType) bool {
	_, ok := g.inverse[t]
	return ok
}

func (g *Graph) hasOutgoingLocked(guid string) bool {
	e, ok := g.entities[guid]
	if !ok {
		return false
	}
	for _, rels := range e.outgoing {
		if len(rels) > 0 {
			return true
		}
	}
	return false
}
