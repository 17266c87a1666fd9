package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	graphdto "promptatlas/internal/modules/graph/dto"
)

func newGraphCmd(g *globals) *cobra.Command {
	graph := &cobra.Command{Use: "graph", Short: "Technique relationship graph"}

	var categories []string
	var minConnections int
	var search string
	build := &cobra.Command{
		Use:   "build",
		Short: "Build the filtered graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.GraphCLI.Build(context.Background(), categories, minConnections, search)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "nodes=%d links=%d\n", len(out.Nodes), len(out.Links))
			for _, n := range out.Nodes {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", n.ID, n.CategoryID, n.ConnectionCount)
			}
			for _, l := range out.Links {
				_, _ = fmt.Fprintf(w, "%s -> %s\n", l.Source, l.Target)
			}
			return nil
		},
	}
	build.Flags().StringSliceVar(&categories, "category", nil, "keep only these category ids")
	build.Flags().IntVar(&minConnections, "min-connections", 0, "minimum connection count")
	build.Flags().StringVar(&search, "search", "", "match technique names")
	graph.AddCommand(build)

	graph.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Summarise the full graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			s, err := app.GraphCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "nodes=%d links=%d avg=%.2f isolated=%d\n", s.TotalNodes, s.TotalLinks, s.AvgConnections, s.IsolatedNodes)
			if s.MostConnected != nil {
				_, _ = fmt.Fprintf(w, "most_connected=%s (%d)\n", s.MostConnected.ID, s.MostConnected.Connections)
			}
			if s.LeastConnected != nil {
				_, _ = fmt.Fprintf(w, "least_connected=%s (%d)\n", s.LeastConnected.ID, s.LeastConnected.Connections)
			}
			return nil
		},
	})

	graph.AddCommand(&cobra.Command{
		Use:   "connected <id>",
		Short: "List techniques linked to a technique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.GraphCLI.Connected(context.Background(), args[0])
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if len(out.Nodes) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no techniques connected to %s\n", out.FocusID)
				return nil
			}
			printRefs(cmd, out.Nodes)
			return nil
		},
	})

	graph.AddCommand(&cobra.Command{
		Use:   "colors",
		Short: "Show category colors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.GraphCLI.Colors(context.Background())
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, c := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.CategoryID, c.Color)
			}
			return nil
		},
	})

	var depth int
	neighbors := &cobra.Command{
		Use:   "neighbors <id>",
		Short: "List techniques within a number of hops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.GraphCLI.Neighbors(context.Background(), args[0], depth)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printRefs(cmd, out.Nodes)
			return nil
		},
	}
	neighbors.Flags().IntVar(&depth, "depth", 1, "maximum hops")
	graph.AddCommand(neighbors)

	graph.AddCommand(&cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find the shortest path between two techniques",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.GraphCLI.Path(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if !out.Found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no path from %s to %s\n", out.FromID, out.ToID)
				return nil
			}
			ids := make([]string, len(out.Nodes))
			for i, n := range out.Nodes {
				ids[i] = n.ID
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, " -> "))
			return nil
		},
	})

	return graph
}

func printRefs(cmd *cobra.Command, refs []graphdto.NodeRefOutput) {
	if len(refs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "none")
		return
	}
	for _, n := range refs {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.ID, n.Name, n.CategoryID)
	}
}
