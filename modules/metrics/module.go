package metrics

import (
	"context"
	"time"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/observability"
	"github.com/specialistvlad/aspectgo/internal/registry"
)

type startKey struct{}

// Module implements the registry.Module interface for this package. The
// metrics advice counts and times advised calls.
type Module struct {
	metrics *observability.Metrics
}

// New creates the metrics module recording into m.
func New(m *observability.Metrics) *Module {
	return &Module{metrics: m}
}

// Register registers the advice with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAdvice("metrics", m.factory)
}

func (m *Module) factory(_ context.Context, p registry.Params) (aspect.Hooks, error) {
	if err := p.Decode(&struct{}{}); err != nil {
		return aspect.Hooks{}, err
	}
	record := func(jp *aspect.JoinPoint, err error) {
		var elapsed time.Duration
		if start, ok := jp.Load(startKey{}); ok {
			elapsed = time.Since(start.(time.Time))
		}
		m.metrics.RecordCall(jp.Kind().Name(), jp.Target.String(), elapsed, err)
	}
	return aspect.Hooks{
		Before: func(jp *aspect.JoinPoint) {
			jp.Store(startKey{}, time.Now())
		},
		After: func(jp *aspect.JoinPoint, _ any) {
			record(jp, nil)
		},
		AfterError: record,
	}, nil
}
