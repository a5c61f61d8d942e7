package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"entitygraph/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "从拓扑文件构建关系图并输出每个集群的关系数",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, report, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := newTable(out, "CLUSTER", "CONTAINS", "SERVES", "CONSUMES_FROM", "COORDINATED_BY", "UNRESOLVED")
			for _, c := range report.Clusters {
				t.AppendRow(table.Row{c.ClusterGUID, c.Contains, c.Serves, c.ConsumesFrom, c.CoordinatedBy, len(c.Unresolved)})
			}
			t.Render()
			for _, c := range report.Clusters {
				for _, ref := range c.Unresolved {
					fmt.Fprintf(out, "unresolved: %s\n", ref)
				}
			}
			return nil
		},
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var failOnIssues bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "检查孤立关系和层级环",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			report := svc.Monitor(cmd.Context())
			out := cmd.OutOrStdout()
			if len(report.Issues) == 0 {
				fmt.Fprintln(out, "no issues found")
				return nil
			}
			t := newTable(out, "KIND", "SOURCE", "TARGET", "TYPE", "CYCLE")
			for _, issue := range report.Issues {
				t.AppendRow(table.Row{issue.Kind, issue.SourceGUID, issue.TargetGUID, issue.RelationshipType, strings.Join(issue.Cycle, " -> ")})
			}
			t.Render()
			if failOnIssues {
				return fmt.Errorf("发现 %d 个问题", len(report.Issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "发现问题时以非零状态退出")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "输出关系图统计",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			stats := svc.Graph.Stats()
			t := newTable(cmd.OutOrStdout(), "METRIC", "VALUE")
			t.AppendRow(table.Row{"total_entities", stats.TotalEntities})
			t.AppendRow(table.Row{"total_relationships", stats.TotalRelationships})
			t.AppendRow(table.Row{"hierarchy_depth", stats.HierarchyDepth})
			types := make([]string, 0, len(stats.RelationshipCounts))
			for relType := range stats.RelationshipCounts {
				types = append(types, string(relType))
			}
			sort.Strings(types)
			for _, relType := range types {
				t.AppendRow(table.Row{relType, stats.RelationshipCounts[domain.RelationType(relType)]})
			}
			t.Render()
			return nil
		},
	}
}

func newHierarchyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy GUID",
		Short: "输出实体在层级中的位置",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			h := svc.Graph.Hierarchy(args[0])
			t := newTable(cmd.OutOrStdout(), "FIELD", "VALUE")
			t.AppendRow(table.Row{"level", h.Level})
			t.AppendRow(table.Row{"parent", h.Parent})
			t.AppendRow(table.Row{"ancestors", strings.Join(h.Ancestors, "\n")})
			t.AppendRow(table.Row{"children", strings.Join(h.Children, "\n")})
			t.AppendRow(table.Row{"descendants", strings.Join(h.Descendants, "\n")})
			t.Render()
			return nil
		},
	}
}

func newRelatedCmd(opts *rootOptions) *cobra.Command {
	var (
		depth int
		types []string
	)
	cmd := &cobra.Command{
		Use:   "related GUID",
		Short: "按深度查找关联实体",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			filter := make([]domain.RelationType, 0, len(types))
			for _, t := range types {
				filter = append(filter, domain.RelationType(t))
			}
			related := svc.Graph.RelatedEntities(args[0], filter, depth)
			t := newTable(cmd.OutOrStdout(), "ENTITY", "RELATIONSHIP", "DISTANCE")
			for _, r := range related {
				t.AppendRow(table.Row{r.EntityGUID, r.RelationshipType, r.Distance})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 1, "最大跳数")
	cmd.Flags().StringSliceVar(&types, "type", nil, "只沿这些关系类型扩展")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "以 JSON 输出可视化数据",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(svc.Graph.ExportForVisualization())
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "输出紧凑 JSON")
	return cmd
}
