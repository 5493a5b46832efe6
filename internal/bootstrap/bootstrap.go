package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	diagraminadapter "depflow/internal/modules/diagram/adapter/in"
	diagramoutadapter "depflow/internal/modules/diagram/adapter/out"
	diagramin "depflow/internal/modules/diagram/port/in"
	diagramservice "depflow/internal/modules/diagram/service"
	diagramusecase "depflow/internal/modules/diagram/usecase"
	sentenceinadapter "depflow/internal/modules/sentence/adapter/in"
	sentenceoutadapter "depflow/internal/modules/sentence/adapter/out"
	sentencein "depflow/internal/modules/sentence/port/in"
	sentenceservice "depflow/internal/modules/sentence/service"
	sentenceusecase "depflow/internal/modules/sentence/usecase"
	"depflow/internal/platform/clock"
	"depflow/internal/platform/config"
	"depflow/internal/platform/logging"
	uiapp "depflow/internal/ui/app"
)

type App struct {
	SentenceCLI sentenceinadapter.CLIHandler
	DiagramCLI  diagraminadapter.CLIHandler
	Logger      *zap.Logger

	sentences sentencein.Usecase
	diagrams  diagramin.Usecase
	closers   []io.Closer
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}

	sentenceProjector, err := sentenceoutadapter.NewSQLiteSentenceProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new sentence projector: %w", err)
	}
	sentenceSvc := sentenceservice.NewSentenceService(
		clk,
		sentenceoutadapter.NewVaultSentenceStore(cfg.WorkspacePath),
		sentenceProjector,
		sentenceoutadapter.NewYAMLBundleReader(),
		logger.Named("sentence"),
	)
	sentenceUC := sentenceusecase.NewInteractor(sentenceSvc)

	diagramLogger := logger.Named("diagram")
	diagramSvc := diagramservice.NewDiagramService(
		diagramoutadapter.NewLogChangeListener(diagramLogger),
		diagramLogger,
	)
	diagramUC := diagramusecase.NewInteractor(diagramSvc, sentenceUC)

	return &App{
		SentenceCLI: sentenceinadapter.NewCLIHandler(sentenceUC),
		DiagramCLI:  diagraminadapter.NewCLIHandler(diagramUC),
		Logger:      logger,
		sentences:   sentenceUC,
		diagrams:    diagramUC,
		closers:     []io.Closer{sentenceProjector},
	}, nil
}

// Close releases the database handles opened by New.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI wires a fresh App that logs to the workspace log file, since the
// alternate screen owns stderr while the program runs.
func RunTUI(cfg config.Config) error {
	logger, err := logging.NewFile(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	logger.Info("tui started", zap.String("workspace", cfg.WorkspacePath))
	model := uiapp.NewModel(cfg.WorkspacePath, app.sentences, app.diagrams)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
