package app

import (
	"github.com/specialistvlad/aspectgo/internal/registry"
	"github.com/specialistvlad/aspectgo/modules/metrics"
	"github.com/specialistvlad/aspectgo/modules/notify"
	"github.com/specialistvlad/aspectgo/modules/span"
	"github.com/specialistvlad/aspectgo/modules/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// coreModules is the definitive list of the advice compiled into the
// aspectgo binary. The notify module is kept on the app so its count can be
// reported.
func (a *App) coreModules(tp oteltrace.TracerProvider) []registry.Module {
	a.notify = notify.New(a.outW)
	return []registry.Module{
		&trace.Module{},
		a.notify,
		metrics.New(a.metrics),
		span.New(tp),
	}
}
