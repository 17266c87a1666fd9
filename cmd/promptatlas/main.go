package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"promptatlas/internal/bootstrap"
	"promptatlas/internal/platform/config"
	"promptatlas/internal/platform/logging"
)

func main() {
	g := &globals{}
	err := newRootCmd(g).Execute()
	if closeErr := g.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	workspace string
	catalogue string
	logLevel  string
	logFormat string
	json      bool
	cfg       config.Config
	app       *bootstrap.App
}

func (g *globals) close() error {
	return g.app.Close()
}

func newRootCmd(g *globals) *cobra.Command {

	root := &cobra.Command{
		Use:           "promptatlas",
		Short:         "Browse prompt engineering techniques and compose prompts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.New(g.workspace)
			if err != nil {
				return err
			}
			cfg, err = cfg.WithCatalogue(g.catalogue).WithLog(g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			g.cfg = cfg
			slog.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.workspace, "workspace", ".", "workspace directory")
	root.PersistentFlags().StringVar(&g.catalogue, "catalogue", "", "technique dataset (defaults to data/techniques.json in the workspace)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format: text|json")
	root.PersistentFlags().BoolVar(&g.json, "json", false, "print JSON instead of text")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newReindexCmd(g))
	root.AddCommand(newCatalogCmd(g))
	root.AddCommand(newGraphCmd(g))
	root.AddCommand(newPromptCmd(g))
	return root
}

func loadApp(g *globals) (*bootstrap.App, error) {
	app, err := bootstrap.New(g.cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	g.app = app
	return app, nil
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the promptatlas terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			// Logs would corrupt the alt screen.
			slog.SetDefault(logging.Discard())
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newReindexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projections from the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d categories, %d techniques\n", out.Categories, out.Techniques)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
