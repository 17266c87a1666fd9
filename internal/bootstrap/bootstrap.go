package bootstrap

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "promptatlas/internal/modules/catalog/adapter/in"
	catalogoutadapter "promptatlas/internal/modules/catalog/adapter/out"
	catalogservice "promptatlas/internal/modules/catalog/service"
	catalogusecase "promptatlas/internal/modules/catalog/usecase"
	graphinadapter "promptatlas/internal/modules/graph/adapter/in"
	graphservice "promptatlas/internal/modules/graph/service"
	graphusecase "promptatlas/internal/modules/graph/usecase"
	promptinadapter "promptatlas/internal/modules/prompt/adapter/in"
	promptoutadapter "promptatlas/internal/modules/prompt/adapter/out"
	promptservice "promptatlas/internal/modules/prompt/service"
	promptusecase "promptatlas/internal/modules/prompt/usecase"
	"promptatlas/internal/platform/clock"
	"promptatlas/internal/platform/config"
	"promptatlas/internal/platform/id"
	uiapp "promptatlas/internal/ui/app"
)

type App struct {
	Config     config.Config
	CatalogCLI cataloginadapter.CLIHandler
	GraphCLI   graphinadapter.CLIHandler
	PromptCLI  promptinadapter.CLIHandler

	stores *sqliteStores
}

// New wires the modules. No file is opened here; the SQLite projections are
// created by the first command that needs them.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	clk := clock.SystemClock{}
	ids := id.ULID{}

	source := catalogoutadapter.NewJSONCatalogueSource(cfg.CataloguePath)
	stores := newSQLiteStores(cfg.DBPath)

	graphStore := lazyGraphStore{stores: stores}
	graphSvc := graphservice.NewGraphService(source, graphStore, graphStore)
	graphUC := graphusecase.NewInteractor(graphSvc, logger.With("module", "graph"))

	catalogSvc := catalogservice.NewCatalogService(source, lazyCatalogProjector{stores: stores}, catalogoutadapter.NewVaultNoteStore())
	catalogUC := catalogusecase.NewInteractor(catalogSvc, graphUC, logger.With("module", "catalog"))

	promptSvc := promptservice.NewPromptService(
		clk,
		ids,
		source,
		promptoutadapter.NewFileExportStore(cfg.ExportDir),
		promptoutadapter.NewYAMLTemplateStore(cfg.TemplatesDir),
	)
	promptUC := promptusecase.NewInteractor(promptSvc, logger.With("module", "prompt"))

	return &App{
		Config:     cfg,
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		GraphCLI:   graphinadapter.NewCLIHandler(graphUC),
		PromptCLI:  promptinadapter.NewCLIHandler(promptUC),
		stores:     stores,
	}, nil
}

// Close releases the SQLite handles opened by earlier commands.
func (a *App) Close() error {
	if a == nil || a.stores == nil {
		return nil
	}
	return a.stores.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.WorkspacePath, app.CatalogCLI, app.GraphCLI, app.PromptCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return errors.Join(err, app.Close())
}
