package ioc

import (
	"os"

	"entitygraph/internal/app"
)

const defaultConfigPath = "configs/config.yaml"

// InitConfig 读取应用配置，ENTITYGRAPH_CONFIG 可覆盖默认路径。
func InitConfig() (app.Config, error) {
	path := os.Getenv("ENTITYGRAPH_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	return app.LoadConfig(path)
}
