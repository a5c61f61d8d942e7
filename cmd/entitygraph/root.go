package main

import (
	"context"
	"fmt"
	"io"

	"entitygraph/internal/app"
	"entitygraph/internal/graph"
	"entitygraph/internal/topology"
	"entitygraph/pkg/logging"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	topologyPath string
	configPath   string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "entitygraph",
		Short:        "离线构建并检查实体关系图",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.topologyPath, "topology", "configs/topology.yaml", "拓扑文件路径")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径，用于读取关系类型与层级类型")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "日志级别")

	cmd.AddCommand(
		newBuildCmd(opts),
		newValidateCmd(opts),
		newStatsCmd(opts),
		newHierarchyCmd(opts),
		newRelatedCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// loadService 读取拓扑并在内存中重建关系图。
func loadService(ctx context.Context, opts *rootOptions) (*app.Service, app.RebuildReport, error) {
	cfg := app.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := app.LoadConfig(opts.configPath)
		if err != nil {
			return nil, app.RebuildReport{}, err
		}
		cfg = loaded
	}
	logger, err := logging.NewZapLogger(opts.logLevel, "console")
	if err != nil {
		return nil, app.RebuildReport{}, err
	}
	gc, err := cfg.Graph.Build()
	if err != nil {
		return nil, app.RebuildReport{}, err
	}
	g, err := graph.New(gc, logger.Named("graph"))
	if err != nil {
		return nil, app.RebuildReport{}, err
	}
	svc := app.NewService(g, topology.NewFileSource(opts.topologyPath), nil, nil, logger)
	report, err := svc.Rebuild(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("构建关系图失败: %w", err)
	}
	logger.Debug("graph loaded", zap.String("topology", opts.topologyPath))
	return svc, report, nil
}

func newTable(out io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row(header))
	return t
}
