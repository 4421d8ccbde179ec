package testutil

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/identity"
	"github.com/specialistvlad/aspectgo/internal/registry"
	"github.com/specialistvlad/aspectgo/internal/weaver"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// ErrMove is returned by MoveSite for a negative dx.
var ErrMove = errors.New("move rejected")

// Receiver stands in for a shape in advice tests.
type Receiver struct{}

func (r *Receiver) String() string { return "Point(1, 2)" }

// MoveSite returns a fresh shapes.Point.MoveBy call-site. It fails when dx
// is negative and returns dx otherwise.
func MoveSite() *callsite.Site {
	return callsite.New(identity.Method("shapes", "Point", "MoveBy"), func(_ context.Context, args callsite.Args) (any, error) {
		dx, err := args.Int(1)
		if err != nil {
			return nil, err
		}
		if dx < 0 {
			return nil, ErrMove
		}
		return dx, nil
	})
}

// Attach builds the named advice through a fresh registry and enables it
// on sites. The kind is disabled when the test ends.
func Attach(t *testing.T, m registry.Module, advice string, params map[string]cty.Value, policy aspect.Policy, sites ...*callsite.Site) *aspect.Kind {
	t.Helper()
	r := registry.New()
	m.Register(r)
	factory, ok := r.Advice(advice)
	require.True(t, ok)
	hooks, err := factory(context.Background(), registry.Params(params))
	require.NoError(t, err)

	kind, err := aspect.New(weaver.New(), aspect.Definition{
		Name:    advice + "_aspect",
		Policy:  policy,
		Targets: sites,
		Hooks:   hooks,
	})
	require.NoError(t, err)
	kind.Enable(context.Background())
	t.Cleanup(func() { kind.Disable(context.Background()) })
	return kind
}

// LogContext returns a context carrying a debug text logger writing to buf.
func LogContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}
