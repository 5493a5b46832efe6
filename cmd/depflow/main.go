package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"depflow/internal/bootstrap"
	diagramdto "depflow/internal/modules/diagram/dto"
	"depflow/internal/platform/config"
	"depflow/internal/platform/logging"
	"depflow/internal/ui/components"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOptions struct {
	workspace string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "depflow",
		Short:         "Explore sentence dependency graphs as collapsible trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.workspace, "workspace", ".", "workspace directory holding sentences/")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newParseCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newSentenceCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	return root
}

func loadConfig(opts *globalOptions) (config.Config, error) {
	cfg, err := config.New(opts.workspace)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.WithLogLevel(opts.logLevel)
}

// withApp builds the application with a stderr logger, runs fn and flushes
// the logger afterwards.
func withApp(opts *globalOptions, fn func(app *bootstrap.App) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the depflow terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg)
		},
	}
}

func newParseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file|->",
		Short: "Print the full parse of graph data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.DiagramCLI.Parse(context.Background(), text)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		sentenceID int
		file       string
		clicks     []string
		all        bool
		asJSON     bool
	)
	render := &cobra.Command{
		Use:   "render [--id N | --file F] [--click ID ...] [--all]",
		Short: "Print the visible tree after applying clicks in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (sentenceID > 0) == (file != "") {
				return fmt.Errorf("exactly one of --id or --file is required")
			}
			var text string
			if file != "" {
				var err error
				if text, err = readInput(cmd, file); err != nil {
					return err
				}
			}
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				var (
					out diagramdto.DiagramOutput
					err error
				)
				if sentenceID > 0 {
					out, err = app.DiagramCLI.OpenSentence(ctx, sentenceID)
				} else {
					out, err = app.DiagramCLI.OpenText(ctx, text)
				}
				if err != nil {
					return err
				}
				if all {
					if out, err = app.DiagramCLI.ExpandAll(ctx); err != nil {
						return err
					}
				}
				if len(clicks) > 0 {
					if out, err = app.DiagramCLI.Click(ctx, clicks...); err != nil {
						return err
					}
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				if out.Sentence != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", out.SentenceID, out.Sentence)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderTree(out, ""))
				if len(out.Dangling) > 0 {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unattached nodes: %s\n", strings.Join(out.Dangling, ", "))
				}
				return nil
			})
		},
	}
	render.Flags().IntVar(&sentenceID, "id", 0, "sentence id from the workspace")
	render.Flags().StringVar(&file, "file", "", "graph data file, - for stdin")
	render.Flags().StringSliceVar(&clicks, "click", nil, "node ids to toggle, in order")
	render.Flags().BoolVar(&all, "all", false, "expand every node before clicking")
	render.Flags().BoolVar(&asJSON, "json", false, "print the visible subset as JSON")
	return render
}

func newSentenceCmd(opts *globalOptions) *cobra.Command {
	sentence := &cobra.Command{Use: "sentence", Short: "Manage the sentence library"}

	var text, graphFile string
	add := &cobra.Command{
		Use:   "add --text <sentence> --graph-file <file|->",
		Short: "Add a sentence with its graph data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(text) == "" || graphFile == "" {
				return fmt.Errorf("--text and --graph-file are required")
			}
			graph, err := readInput(cmd, graphFile)
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SentenceCLI.Add(context.Background(), text, graph)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added #%d note=%s\n", out.ID, out.NotePath)
				return nil
			})
		},
	}
	add.Flags().StringVar(&text, "text", "", "sentence text")
	add.Flags().StringVar(&graphFile, "graph-file", "", "graph data file, - for stdin")

	importCmd := &cobra.Command{
		Use:   "import <bundle.yaml>",
		Short: "Import sentences and questions from a YAML bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SentenceCLI.Import(context.Background(), args[0])
				for _, s := range out.Added {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s\n", s.ID, s.Text)
				}
				return err
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List sentences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				sentences, err := app.SentenceCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(sentences) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sentences")
					return nil
				}
				for _, s := range sentences {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d questions\t%s\n", s.ID, s.QuestionCount, s.Text)
				}
				return nil
			})
		},
	}

	var showID int
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show a sentence with its graph data and questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showID <= 0 {
				return fmt.Errorf("--id is required")
			}
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.SentenceCLI.Get(context.Background(), showID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "id: %d\nsentence: %s\nnote: %s\n\n%s\n", s.ID, s.Text, s.NotePath, s.GraphData)
				for i, q := range s.Questions {
					_, _ = fmt.Fprintf(w, "\nQ%d. %s\n", i+1, q.Prompt)
					for _, opt := range q.Options {
						mark := " "
						if opt == q.Answer {
							mark = "*"
						}
						_, _ = fmt.Fprintf(w, "  %s %s\n", mark, opt)
					}
				}
				return nil
			})
		},
	}
	show.Flags().IntVar(&showID, "id", 0, "sentence id")

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search sentence text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				hits, err := app.SentenceCLI.Search(context.Background(), strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				for _, s := range hits {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", s.ID, s.Text)
				}
				return nil
			})
		},
	}
	search.Flags().IntVar(&limit, "limit", 50, "maximum number of results")

	sentence.AddCommand(add, importCmd, list, show, search)
	return sentence
}

func newReindexCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projection from workspace notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.SentenceCLI.Reindex(context.Background()); err != nil {
					return err
				}
				app.Logger.Debug("reindex finished", zap.String("workspace", opts.workspace))
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
				return nil
			})
		},
	}
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
