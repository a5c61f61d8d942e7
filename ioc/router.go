package ioc

import (
	"entitygraph/internal/app"
	"entitygraph/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// InitGraphHandler 构建关系图 HTTP 处理器。
func InitGraphHandler(svc *app.Service, logger *zap.Logger) *router.GraphHandler {
	return router.NewGraphHandler(svc, logger)
}

// InitGinEngine 构建 gin 引擎。
func InitGinEngine(h *router.GraphHandler, reg *prometheus.Registry) *gin.Engine {
	return router.NewEngine(h, reg)
}
