package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCatalogCmd(g *globals) *cobra.Command {
	catalog := &cobra.Command{Use: "catalog", Short: "Technique catalogue queries"}

	catalog.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListCategories(context.Background())
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, c := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", c.ID, c.Name, c.TechniqueCount)
			}
			return nil
		},
	})

	var categoryID, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List techniques",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListTechniques(context.Background(), categoryID, query)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no techniques")
				return nil
			}
			for _, t := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.ID, t.Name, t.CategoryID)
			}
			return nil
		},
	}
	list.Flags().StringVar(&categoryID, "category", "", "category id")
	list.Flags().StringVar(&query, "query", "", "match name, description or alias")
	catalog.AddCommand(list)

	catalog.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one technique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			d, err := app.CatalogCLI.GetTechnique(context.Background(), args[0])
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s (%s)\ncategory: %s\n\n%s\n", d.Name, d.ID, d.CategoryName, d.Description)
			if len(d.Aliases) > 0 {
				_, _ = fmt.Fprintf(w, "aliases: %s\n", strings.Join(d.Aliases, ", "))
			}
			for _, s := range []struct{ label, text string }{
				{"use case", d.UseCase},
				{"example", d.Example},
				{"tips", d.Tips},
				{"common mistakes", d.CommonMistakes},
			} {
				if strings.TrimSpace(s.text) != "" {
					_, _ = fmt.Fprintf(w, "\n%s:\n%s\n", s.label, s.text)
				}
			}
			if len(d.Related) > 0 {
				_, _ = fmt.Fprintf(w, "\nrelated: %s\n", strings.Join(d.Related, ", "))
			}
			if len(d.Unresolved) > 0 {
				_, _ = fmt.Fprintf(w, "unresolved: %s\n", strings.Join(d.Unresolved, ", "))
			}
			return nil
		},
	})

	var outDir string
	export := &cobra.Command{
		Use:   "export-notes",
		Short: "Write one markdown note per technique",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			dir := outDir
			if dir == "" {
				dir = app.Config.NotesDir
			}
			out, err := app.CatalogCLI.ExportNotes(context.Background(), dir)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\n", len(out.Paths), out.Dir)
			return nil
		},
	}
	export.Flags().StringVar(&outDir, "out", "", "output directory (defaults to the configured notes dir)")
	catalog.AddCommand(export)

	return catalog
}
