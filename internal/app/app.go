package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/modelgrid/internal/config"
	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/executor"
	"github.com/specialistvlad/modelgrid/internal/graph"
	"github.com/specialistvlad/modelgrid/internal/initializer"
	"github.com/specialistvlad/modelgrid/internal/inmemorystore"
	"github.com/specialistvlad/modelgrid/internal/inmemorytopology"
	"github.com/specialistvlad/modelgrid/internal/projection"
	"github.com/specialistvlad/modelgrid/internal/schema"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/specialistvlad/modelgrid/internal/view"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	model     *config.Model
	converter config.Converter

	universe     *typedesc.Universe
	schemas      *schema.Store
	graph        graph.Graph
	initializers *initializer.Registry
	factory      *projection.Factory
	rules        []executor.Rule
}

// NewApp loads the model, validates its types, seeds the graph with the
// declared collections, and prepares the rules. Reports go to outW and logs
// to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, converter, err := loader.Load(ctx, cfg.searchPaths()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	universe, err := typedesc.NewUniverse(model.Types)
	if err != nil {
		return nil, fmt.Errorf("invalid type declarations: %w", err)
	}
	logger.Debug("Types validated.", "count", len(universe.Names()))

	schemas := schema.NewStore(universe)
	g := graph.New(inmemorytopology.New(), inmemorystore.New())
	initializers := initializer.NewRegistry(schemas)

	a := &App{
		outW:         outW,
		logger:       logger,
		config:       cfg,
		model:        model,
		converter:    converter,
		universe:     universe,
		schemas:      schemas,
		graph:        g,
		initializers: initializers,
		factory:      projection.NewFactory(view.Options{Graph: g, Schemas: schemas, Initializers: initializers}),
	}

	if err := a.seedCollections(ctx); err != nil {
		return nil, err
	}
	rules, err := a.buildRules(ctx)
	if err != nil {
		return nil, err
	}
	a.rules = rules
	logger.Debug("Application initialized.", "collections", len(model.Collections), "rules", len(rules))
	return a, nil
}

// Graph returns the application's model graph. This is primarily for testing.
func (a *App) Graph() graph.Graph {
	return a.graph
}

// Initializers returns the registry of element initializers, so that
// embedders can install custom strategies before Run.
func (a *App) Initializers() *initializer.Registry {
	return a.initializers
}
