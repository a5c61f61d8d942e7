package topology

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileSource 从 YAML 文件读取拓扑。
type FileSource struct {
	Path string
}

// NewFileSource 创建文件数据源。
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchTopology 每次调用都会重新读取文件。
func (s *FileSource) FetchTopology(ctx context.Context) (Topology, error) {
	if err := ctx.Err(); err != nil {
		return Topology{}, err
	}
	return LoadFile(s.Path)
}

var validate = validator.New()

// LoadFile 读取并校验拓扑文件。
func LoadFile(path string) (Topology, error) {
	if path == "" {
		return Topology{}, fmt.Errorf("拓扑文件路径为空")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, fmt.Errorf("读取拓扑文件失败: %w", err)
	}
	return Parse(raw)
}

// Parse 解析 YAML 拓扑并补齐 GUID。
func Parse(raw []byte) (Topology, error) {
	var topo Topology
	if err := yaml.Unmarshal(raw, &topo); err != nil {
		return Topology{}, fmt.Errorf("解析拓扑失败: %w", err)
	}
	if err := validate.Struct(topo); err != nil {
		return Topology{}, fmt.Errorf("拓扑校验失败: %w", err)
	}
	fillGUIDs(&topo)
	topo.RunID = newRunID()
	return topo, nil
}
