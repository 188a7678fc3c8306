package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thywilljoshua/boardmate/internal/ai"
	"github.com/thywilljoshua/boardmate/internal/config"
	"github.com/thywilljoshua/boardmate/internal/export"
	"github.com/thywilljoshua/boardmate/internal/lifecycle"
	"github.com/thywilljoshua/boardmate/internal/store"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	statePath  string
	verbose    bool

	cfg   *config.Config
	log   *zap.Logger
	store *store.Store

	// newGenerator is swapped out in tests.
	newGenerator func(ctx context.Context, cfg *config.Config, log *zap.Logger) (ai.Generator, error)
	systemDark   func() bool
}

func newApp() *app {
	return &app{
		newGenerator: defaultGenerator,
		systemDark:   lipgloss.HasDarkBackground,
	}
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "boardmate",
		Short: "Generate board-exam study notes with Gemini",
		Long: `boardmate builds flashcards, definitions, important questions, a chapter
summary and improvement tips for a board, class, subject and chapter, and can
export them as a PDF.

Run "boardmate tui" for the interactive form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "path to config.yaml")
	root.PersistentFlags().StringVar(&a.statePath, "state", "", "path to the session database (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		generateCmd(a),
		exportCmd(a),
		formCmd(a),
		themeCmd(a),
		inspectCmd(a),
		configCmd(a),
		tuiCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.statePath != "" {
		cfg.StatePath = a.statePath
	}
	a.cfg = cfg

	if a.log == nil {
		zc := zap.NewProductionConfig()
		if a.verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// The TUI owns the terminal, so its logs go next to the state file.
		if cmd.Annotations["logs"] == "file" {
			path := filepath.Join(filepath.Dir(cfg.StatePath), "boardmate.log")
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			zc.OutputPaths = []string{path}
			zc.ErrorOutputPaths = []string{path}
		}
		log, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.log = log
	}

	if cmd.Annotations["state"] == "none" {
		return nil
	}
	st, err := store.Open(cfg.StatePath, a.log)
	if err != nil {
		return err
	}
	a.store = st
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func defaultGenerator(ctx context.Context, cfg *config.Config, log *zap.Logger) (ai.Generator, error) {
	if cfg.APIKey == "" {
		return ai.Noop{}, nil
	}
	return ai.NewGemini(ctx, ai.GeminiOptions{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Logger:  log,
	})
}

func (a *app) controller(ctx context.Context) (*lifecycle.Controller, error) {
	gen, err := a.newGenerator(ctx, a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	return lifecycle.New(gen, lifecycle.Config{
		Model:       a.cfg.Model,
		Temperature: a.cfg.Temperature,
	}, a.log), nil
}

func (a *app) exporter(outDir string) *export.Exporter {
	if outDir == "" {
		outDir = a.cfg.OutDir
	}
	return export.NewExporter(export.GGRasterizer{FontPath: a.cfg.FontPath}, outDir, a.log)
}

func (a *app) theme() store.Theme {
	return a.store.LoadTheme(a.systemDark())
}

// requestContext applies the configured timeout, if any.
func (a *app) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	d, _ := a.cfg.RequestTimeout()
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
