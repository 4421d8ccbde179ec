package trace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/registry"
)

type callIDKey struct{}

// CallID returns the id the trace advice gave the invocation, or "" when no
// trace advice ran before the caller.
func CallID(jp *aspect.JoinPoint) string {
	if v, ok := jp.Load(callIDKey{}); ok {
		return v.(string)
	}
	return ""
}

// Module implements the registry.Module interface for this package. The
// trace advice logs every advised call, return and error, indented by the
// join point's depth.
type Module struct{}

// Params are the parameters of an `advice "trace"` block.
type Params struct {
	ShowArgs bool   `cty:"show_args"`
	Marker   string `cty:"marker"`
	Level    string `cty:"level"`
}

// Register registers the advice with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAdvice("trace", NewHooks)
}

// NewHooks builds the trace hooks from plan parameters.
func NewHooks(_ context.Context, p registry.Params) (aspect.Hooks, error) {
	params := Params{Level: "info"}
	if err := p.Decode(&params); err != nil {
		return aspect.Hooks{}, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(params.Level)); err != nil {
		return aspect.Hooks{}, fmt.Errorf("invalid level %q: %w", params.Level, err)
	}

	attrs := func(jp *aspect.JoinPoint) []any {
		out := []any{"call_id", CallID(jp), "aspect", jp.Kind().Name()}
		if params.Marker != "" {
			out = append(out, "marker", params.Marker)
		}
		return out
	}

	return aspect.Hooks{
		Before: func(jp *aspect.JoinPoint) {
			jp.Store(callIDKey{}, uuid.NewString())
			args := attrs(jp)
			if params.ShowArgs {
				args = append(args, "args", fmt.Sprint(jp.Args.Values()))
			}
			if !jp.Caller.IsZero() {
				args = append(args, "caller", jp.Caller.String())
			}
			jp.Logger().Log(jp.Context(), level, strings.Repeat("--", jp.Depth+1)+"> "+jp.Target.Short(), args...)
		},
		After: func(jp *aspect.JoinPoint, result any) {
			args := attrs(jp)
			if params.ShowArgs {
				args = append(args, "result", fmt.Sprint(result))
			}
			jp.Logger().Log(jp.Context(), level, "<"+strings.Repeat("--", jp.Depth+1)+" "+jp.Target.Short(), args...)
		},
		AfterError: func(jp *aspect.JoinPoint, err error) {
			args := append(attrs(jp), "error", err)
			jp.Logger().Log(jp.Context(), level, "<"+strings.Repeat("xx", jp.Depth+1)+" "+jp.Target.Short(), args...)
		},
	}, nil
}
