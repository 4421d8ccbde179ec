package span

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/registry"
	calltrace "github.com/specialistvlad/aspectgo/modules/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/specialistvlad/aspectgo/modules/span"

type spanKey struct{}

// Module implements the registry.Module interface for this package. The
// span advice opens an OpenTelemetry span around every advised call. Inner
// layers and the core run with the span's context, so nested advised calls
// become child spans.
type Module struct {
	tracer trace.Tracer
}

type spanParams struct {
	Name string `cty:"name"`
}

// New creates the span module using tp.
func New(tp trace.TracerProvider) *Module {
	return &Module{tracer: tp.Tracer(tracerName)}
}

// Register registers the advice with the registry.
func (s *Module) Register(r *registry.Registry) {
	r.RegisterAdvice("span", s.factory)
}

func (s *Module) factory(_ context.Context, p registry.Params) (aspect.Hooks, error) {
	var params spanParams
	if err := p.Decode(&params); err != nil {
		return aspect.Hooks{}, err
	}
	end := func(jp *aspect.JoinPoint, err error) {
		v, ok := jp.Load(spanKey{})
		if !ok {
			return
		}
		span := v.(trace.Span)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
	return aspect.Hooks{
		Before: func(jp *aspect.JoinPoint) {
			name := params.Name
			if name == "" {
				name = jp.Target.Short()
			}
			attrs := []attribute.KeyValue{
				attribute.String("aspect.name", jp.Kind().Name()),
				attribute.String("aspect.policy", jp.Kind().Policy().String()),
				attribute.String("aspect.target", jp.Target.String()),
			}
			if id := calltrace.CallID(jp); id != "" {
				attrs = append(attrs, attribute.String("aspect.call_id", id))
			}
			ctx, span := s.tracer.Start(jp.Context(), name, trace.WithAttributes(attrs...))
			jp.SetContext(ctx)
			jp.Store(spanKey{}, span)
		},
		After: func(jp *aspect.JoinPoint, _ any) {
			end(jp, nil)
		},
		AfterError: end,
	}, nil
}
