//go:build wireinject

package main

import (
	"context"

	"entitygraph/ioc"
	"entitygraph/pkg/server"
	"github.com/google/wire"
)

func InitApp(ctx context.Context) (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitRegistry,
		ioc.InitMetrics,
		ioc.InitGraph,
		ioc.InitTopologySource,
		ioc.InitNeo4jClient,
		ioc.InitMirror,
		ioc.InitRedisFanout,
		ioc.InitAppService,
		ioc.InitJobs,
		ioc.InitGraphHandler,
		ioc.InitGinEngine,
		server.NewHTTPServer,
	))
}
