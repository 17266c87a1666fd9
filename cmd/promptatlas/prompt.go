package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	promptdto "promptatlas/internal/modules/prompt/dto"
)

func bindPromptFlags(cmd *cobra.Command, in *promptdto.PromptInput) {
	cmd.Flags().StringVar(&in.Role, "role", "", "who the model should be")
	cmd.Flags().StringVar(&in.Task, "task", "", "what the model should do")
	cmd.Flags().StringVar(&in.Context, "context", "", "background information")
	cmd.Flags().StringVar(&in.Output, "output", "", "expected output format")
}

func newPromptCmd(g *globals) *cobra.Command {
	prompt := &cobra.Command{Use: "prompt", Short: "Compose, score and exchange prompts"}

	var genInput promptdto.PromptInput
	var techniques []string
	var export bool
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a prompt from fields and techniques",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.PromptCLI.Generate(context.Background(), genInput, techniques, export)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, out.Prompt)
			_, _ = fmt.Fprintf(w, "\n---\nquality=%d (%s) tokens~%d chars=%d techniques=%d\n",
				out.Quality.Score, out.Quality.Level, out.Stats.EstimatedTokens, out.Stats.CharCount, out.Stats.TechniqueCount)
			for _, s := range out.Quality.Suggestions {
				_, _ = fmt.Fprintf(w, "- %s\n", s)
			}
			if out.ExportPath != "" {
				_, _ = fmt.Fprintf(w, "exported %s\n", out.ExportPath)
			}
			return nil
		},
	}
	bindPromptFlags(generate, &genInput)
	generate.Flags().StringSliceVar(&techniques, "technique", nil, "technique ids, in order")
	generate.Flags().BoolVar(&export, "export", false, "write the prompt to the export directory")
	prompt.AddCommand(generate)

	var exclude []string
	suggest := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest techniques for a task description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.PromptCLI.Suggest(context.Background(), strings.Join(args, " "), exclude)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no suggestions")
				return nil
			}
			for _, s := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Name)
			}
			return nil
		},
	}
	suggest.Flags().StringSliceVar(&exclude, "exclude", nil, "technique ids to leave out")
	prompt.AddCommand(suggest)

	var valInput promptdto.PromptInput
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check prompt fields for errors and warnings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.PromptCLI.Validate(context.Background(), valInput)
			if err != nil {
				return err
			}
			if g.json {
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				for _, e := range out.Errors {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "error\t%s\t%s\n", e.Field, e.Message)
				}
				for _, w := range out.Warnings {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning\t%s\t%s\n", w.Field, w.Message)
				}
			}
			if !out.Valid {
				return fmt.Errorf("prompt is not valid")
			}
			if !g.json {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "valid")
			}
			return nil
		},
	}
	bindPromptFlags(validate, &valInput)
	prompt.AddCommand(validate)

	prompt.AddCommand(&cobra.Command{
		Use:   "templates",
		Short: "List prompt templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.PromptCLI.Templates(context.Background())
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, t := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.ID, t.Name, strings.Join(t.Techniques, ","))
			}
			return nil
		},
	})

	prompt.AddCommand(&cobra.Command{
		Use:   "template <id>",
		Short: "Show one template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			t, err := app.PromptCLI.Template(context.Background(), args[0])
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), t)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s (%s)\n%s\n\n", t.Name, t.ID, t.Description)
			_, _ = fmt.Fprintf(w, "role: %s\ntask: %s\ncontext: %s\noutput: %s\ntechniques: %s\n",
				t.Role, t.Task, t.Context, t.Output, strings.Join(t.Techniques, ", "))
			return nil
		},
	})

	prompt.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Read an exported prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			out, err := app.PromptCLI.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, out.Prompt)
			_, _ = fmt.Fprintf(w, "\n---\ntechniques: %s\n", strings.Join(out.TechniqueIDs, ", "))
			if len(out.Missing) > 0 {
				_, _ = fmt.Fprintf(w, "missing: %s\n", strings.Join(out.Missing, ", "))
			}
			return nil
		},
	})

	return prompt
}
