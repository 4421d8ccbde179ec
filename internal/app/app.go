package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/observability"
	"github.com/specialistvlad/aspectgo/internal/registry"
	"github.com/specialistvlad/aspectgo/internal/shapes"
	"github.com/specialistvlad/aspectgo/internal/weaver"
	"github.com/specialistvlad/aspectgo/modules/notify"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	ctx      context.Context
	logger   *slog.Logger
	config   *Config
	catalog  *callsite.Catalog
	scene    *shapes.Scene
	weaver   *weaver.Weaver
	registry *registry.Registry
	plan     *config.Plan
	aspects  []*registry.Built
	metrics  *observability.Metrics
	notify   *notify.Module

	shutdownTracing func(context.Context) error
	httpServer      *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger, catalog and registry, and
// with every aspect of the plan built but not yet attached. When no modules
// are given, the stock advice is registered.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (_ *App, err error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		ctx:     ctx,
		logger:  logger,
		config:  cfg,
		catalog: callsite.NewCatalog(),
		scene:   shapes.NewScene(),
		weaver:  weaver.New(),
		metrics: observability.NewMetrics(""),
	}
	a.scene.Register(a.catalog)
	logger.Debug("Call-sites registered.", "count", a.catalog.Len())

	tp, shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: "aspectgo",
		Exporter:    cfg.TraceExporter,
		Writer:      outW,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.shutdownTracing = shutdown
	defer func() {
		if err == nil {
			return
		}
		if shutdownErr := shutdown(ctx); shutdownErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to shut down tracing: %w", shutdownErr))
		}
	}()

	// Load the plan into the format-agnostic model first.
	plan, err := loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	a.plan = plan
	logger.Debug("Plan loaded.", "aspects", len(plan.Aspects))

	a.registry = registry.New()
	if len(modules) == 0 {
		modules = a.coreModules(tp)
	}
	for _, mod := range modules {
		mod.Register(a.registry)
	}
	logger.Debug("All advice modules registered.", "count", len(modules))

	// Building validates the plan against the registry and the catalog.
	a.aspects, err = a.registry.Build(ctx, plan, a.catalog, a.weaver)
	if err != nil {
		return nil, err
	}
	logger.Debug("Plan validation passed.", "aspects_built", len(a.aspects))

	return a, nil
}

// Registry returns the application's advice registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Catalog returns the call-sites the plan can target.
func (a *App) Catalog() *callsite.Catalog {
	return a.catalog
}

// Weaver returns the application's weaver.
func (a *App) Weaver() *weaver.Weaver {
	return a.weaver
}

// Scene returns the demo scene the scenario runs against.
func (a *App) Scene() *shapes.Scene {
	return a.scene
}

// Metrics returns the collectors fed by the metrics advice.
func (a *App) Metrics() *observability.Metrics {
	return a.metrics
}

// Notifications returns how many redraw notifications the stock notify
// advice sent, or 0 when custom modules replaced it.
func (a *App) Notifications() int64 {
	if a.notify == nil {
		return 0
	}
	return a.notify.Count()
}
