package app

import (
	"fmt"
	"os"

	"entitygraph/internal/domain"
	"entitygraph/internal/graph"
	"entitygraph/internal/loader"
	"entitygraph/internal/notify"
	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Graph 描述关系类型表与层级类型。
type Graph struct {
	HierarchyTypes     []domain.RelationType `yaml:"hierarchy_types"`
	ExtraRelationships []domain.Pair         `yaml:"extra_relationships"`
}

type Topology struct {
	Path           string `yaml:"path"`
	RebuildOnStart bool   `yaml:"rebuild_on_start"`
	Watch          bool   `yaml:"watch"`
	DebounceMillis int    `yaml:"debounce_ms"`
}

type Monitor struct {
	Cron      string `yaml:"cron"`
	Heartbeat string `yaml:"heartbeat"`
}

type Publish struct {
	Enabled        bool `yaml:"enabled"`
	loader.Options `yaml:",inline"`
}

type Config struct {
	HTTP     HTTP               `yaml:"http"`
	Log      Log                `yaml:"log"`
	Graph    Graph              `yaml:"graph"`
	Topology Topology           `yaml:"topology"`
	Monitor  Monitor            `yaml:"monitor"`
	Neo4j    loader.Config      `yaml:"neo4j"`
	Publish  Publish            `yaml:"publish"`
	Redis    notify.RedisConfig `yaml:"redis"`
}

// DefaultConfig 返回未配置时使用的默认值。
func DefaultConfig() Config {
	return Config{
		HTTP: HTTP{Listen: ":8080"},
		Log:  Log{Level: "info", Encoding: "console"},
		Graph: Graph{
			HierarchyTypes: []domain.RelationType{domain.RelContains},
		},
		Topology: Topology{
			Path:           "configs/topology.yaml",
			RebuildOnStart: true,
			Watch:          true,
			DebounceMillis: 500,
		},
		Monitor: Monitor{Cron: "*/5 * * * *", Heartbeat: "@hourly"},
		Publish: Publish{Options: loader.Options{BatchSize: 500, Workers: 4}},
		Redis:   notify.RedisConfig{Channel: "entitygraph:events", QueueSize: 1024},
	}
}

// LoadConfig 从文件加载配置，文件中未出现的字段保留默认值。
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	if _, err := cfg.Graph.Build(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Build 生成关系图配置，额外的关系对追加在内置类型之后。
func (g Graph) Build() (graph.Config, error) {
	pairs := append(domain.DefaultPairs(), g.ExtraRelationships...)
	registry, err := domain.NewRegistry(pairs...)
	if err != nil {
		return graph.Config{}, fmt.Errorf("关系类型配置错误: %w", err)
	}
	hierarchy := g.HierarchyTypes
	if len(hierarchy) == 0 {
		hierarchy = []domain.RelationType{domain.RelContains}
	}
	for _, t := range hierarchy {
		if !registry.IsValid(t) {
			return graph.Config{}, fmt.Errorf("层级关系类型未注册: %q", t)
		}
	}
	return graph.Config{Registry: registry, HierarchyTypes: hierarchy}, nil
}
