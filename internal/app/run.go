package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/shapes"
)

// Run weaves the enabled aspects, runs the configured scenario and unweaves
// everything again. The program is back to its original behavior when Run
// returns, whatever the outcome.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.startDiagnostics()
	defer func() {
		err = errors.Join(err, a.shutdown(ctx))
	}()

	enabled := a.enable(ctx)
	defer a.unweave(ctx, enabled)

	switch a.config.Scenario {
	case ScenarioFigures:
		a.logger.Info("🚀 Running figures scenario.", "aspects", len(enabled))
		if _, err := shapes.RunFigures(ctx, a.scene, a.outW); err != nil {
			return fmt.Errorf("scenario failed: %w", err)
		}
	case ScenarioNone:
		a.logger.Debug("No scenario configured.")
	}

	a.reportCoverage()

	if a.config.Hold {
		a.logger.Info("Holding aspects woven until interrupted.")
		<-ctx.Done()
	}

	a.logger.Info("🏁 Run finished.", "notifications", a.Notifications())
	return nil
}

// enable attaches the production aspects, plus the debug ones when Debug is
// set, in plan order.
func (a *App) enable(ctx context.Context) []*aspect.Kind {
	var enabled []*aspect.Kind
	for _, b := range a.aspects {
		if b.Spec.Group == config.GroupDebug && !a.config.Debug {
			a.logger.Debug("Skipping debug aspect.", "aspect", b.Spec.Name)
			continue
		}
		b.Kind.Enable(ctx)
		enabled = append(enabled, b.Kind)
	}
	return enabled
}

// unweave disables the enabled aspects in reverse order, then resets the
// weaver so every call-site runs its original func again.
func (a *App) unweave(ctx context.Context, enabled []*aspect.Kind) {
	for i := len(enabled) - 1; i >= 0; i-- {
		enabled[i].Disable(ctx)
	}
	a.weaver.ResetAll(ctx)
	a.logger.Debug("All aspects removed.")
}

// reportCoverage logs the call-sites every coverage aspect never saw.
func (a *App) reportCoverage() {
	for name, uncovered := range a.Coverage() {
		if len(uncovered) == 0 {
			a.logger.Info("All targets covered.", "aspect", name)
			continue
		}
		a.logger.Warn("Targets never invoked.", "aspect", name, "count", len(uncovered), "targets", uncovered)
	}
}

// Coverage returns, per coverage aspect, the targets not invoked since the
// aspect was enabled.
func (a *App) Coverage() map[string][]string {
	out := make(map[string][]string)
	for _, b := range a.aspects {
		if b.Kind.Policy() != aspect.Coverage {
			continue
		}
		ids := b.Kind.Uncovered()
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			names = append(names, id.String())
		}
		out[b.Spec.Name] = names
	}
	return out
}

func (a *App) shutdown(ctx context.Context) error {
	diagErr := a.closeDiagnostics()
	var traceErr error
	if a.shutdownTracing != nil {
		traceErr = a.shutdownTracing(context.WithoutCancel(ctx))
	}
	return errors.Join(diagErr, traceErr)
}
