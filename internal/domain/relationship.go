package domain

import (
	"fmt"
	"strings"
)

// RelationType 表示关系类型，取值必须在 Registry 中注册。
type RelationType string

const (
	RelContains      RelationType = "CONTAINS"
	RelContainedIn   RelationType = "CONTAINED_IN"
	RelServes        RelationType = "SERVES"
	RelServedBy      RelationType = "SERVED_BY"
	RelConsumesFrom  RelationType = "CONSUMES_FROM"
	RelProducesTo    RelationType = "PRODUCES_TO"
	RelCoordinatedBy RelationType = "COORDINATED_BY"
	RelCoordinates   RelationType = "COORDINATES"
	RelManages       RelationType = "MANAGES"
	RelManagedBy     RelationType = "MANAGED_BY"
)

// Pair 声明一对互逆的关系类型。
type Pair struct {
	Type    RelationType `yaml:"type" json:"type"`
	Inverse RelationType `yaml:"inverse" json:"inverse"`
}

// DefaultPairs 是内置的关系类型集合。
func DefaultPairs() []Pair {
	return []Pair{
		{Type: RelContains, Inverse: RelContainedIn},
		{Type: RelServes, Inverse: RelServedBy},
		{Type: RelConsumesFrom, Inverse: RelProducesTo},
		{Type: RelCoordinatedBy, Inverse: RelCoordinates},
		{Type: RelManages, Inverse: RelManagedBy},
	}
}

// Relationship 是一条关系记录，Metadata 由调用方提供，图不做解释。
type Relationship struct {
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	Type     RelationType   `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Registry 是封闭的关系类型表，构建后不可修改。
type Registry struct {
	inverse map[RelationType]RelationType
	order   []RelationType
}

// NewRegistry 根据给定的关系对构建注册表。
func NewRegistry(pairs ...Pair) (*Registry, error) {
	r := &Registry{inverse: make(map[RelationType]RelationType, len(pairs)*2)}
	for _, p := range pairs {
		fwd := RelationType(strings.TrimSpace(string(p.Type)))
		inv := RelationType(strings.TrimSpace(string(p.Inverse)))
		if fwd == "" || inv == "" {
			return nil, fmt.Errorf("关系类型不能为空: %q/%q", p.Type, p.Inverse)
		}
		if fwd == inv {
			return nil, fmt.Errorf("关系类型 %s 不能以自身为逆", fwd)
		}
		if err := r.bind(fwd, inv); err != nil {
			return nil, err
		}
		if err := r.bind(inv, fwd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry 与 NewRegistry 相同，失败时 panic，仅用于内置配置。
func MustRegistry(pairs ...Pair) *Registry {
	r, err := NewRegistry(pairs...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry 返回包含内置关系对的注册表。
func DefaultRegistry() *Registry {
	return MustRegistry(DefaultPairs()...)
}

func (r *Registry) bind(t, inv RelationType) error {
	if existing, ok := r.inverse[t]; ok {
		if existing == inv {
			return nil
		}
		return fmt.Errorf("关系类型 %s 已注册，逆类型为 %s，与 %s 冲突", t, existing, inv)
	}
	r.inverse[t] = inv
	r.order = append(r.order, t)
	return nil
}

// IsValid 判断类型是否已注册。
func (r *Registry) IsValid(t RelationType) bool {
	_, ok := r.inverse[t]
	return ok
}

// InverseOf 返回类型的逆类型。
func (r *Registry) InverseOf(t RelationType) (RelationType, error) {
	inv, ok := r.inverse[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRelationType, t)
	}
	return inv, nil
}

// Types 按注册顺序返回全部类型。
func (r *Registry) Types() []RelationType {
	return append([]RelationType(nil), r.order...)
}
