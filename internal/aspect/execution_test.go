package aspect

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/identity"
	"github.com/specialistvlad/aspectgo/internal/weaver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionFiresOnEveryCall(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	c := newCountdown()
	k := mustKind(t, weaver.New(), Definition{
		Name:    "trace",
		Policy:  Execution,
		Targets: []*callsite.Site{c.site},
		Hooks:   recordingHooks(j, "trace"),
	})
	require.Equal(t, 1, k.Enable(ctx))

	res, err := c.run(t, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res)

	expected := []string{
		"trace.before(Countdown)", "trace.before(Countdown)", "trace.before(Countdown)",
		"trace.after(Countdown)=0", "trace.after(Countdown)=1", "trace.after(Countdown)=2",
	}
	if diff := cmp.Diff(expected, j.events); diff != "" {
		t.Errorf("advice mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, k.Active(), "execution kinds never report active")
}

func TestExecutionPropagatesErrorUnchanged(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	boom := errors.New("boom")
	site := callsite.New(identity.Function("demo", "Fail"), func(context.Context, callsite.Args) (any, error) {
		j.add("original")
		return "partial", boom
	})
	w := weaver.New()
	mustKind(t, w, Definition{Name: "A", Targets: []*callsite.Site{site}, Hooks: recordingHooks(j, "A")}).Enable(ctx)
	mustKind(t, w, Definition{Name: "B", Targets: []*callsite.Site{site}, Hooks: recordingHooks(j, "B")}).Enable(ctx)

	res, err := site.Invoke(ctx, callsite.Args{})
	assert.Same(t, boom, err)
	assert.Equal(t, "partial", res, "the result accompanying an error is returned as-is")
	assert.Equal(t, []string{
		"B.before(Fail)", "A.before(Fail)", "original",
		"A.after_error(Fail)=boom", "B.after_error(Fail)=boom",
	}, j.events)
}

type traceKey struct{}

func TestBeforeMayReplaceContext(t *testing.T) {
	ctx := context.Background()
	var seen any
	site := callsite.New(identity.Function("demo", "Peek"), func(ctx context.Context, _ callsite.Args) (any, error) {
		seen = ctx.Value(traceKey{})
		return nil, nil
	})
	var stored any
	k := mustKind(t, weaver.New(), Definition{
		Name:    "ctx",
		Targets: []*callsite.Site{site},
		Hooks: Hooks{
			Before: func(jp *JoinPoint) {
				jp.SetContext(context.WithValue(jp.Context(), traceKey{}, "span-1"))
				jp.Store("started", true)
			},
			After: func(jp *JoinPoint, _ any) {
				stored, _ = jp.Load("started")
			},
		},
	})
	k.Enable(ctx)

	_, err := site.Invoke(ctx, callsite.Args{})
	require.NoError(t, err)
	assert.Equal(t, "span-1", seen)
	assert.Equal(t, true, stored)
}

func TestPanicsUnwindWithoutTerminalHooks(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	site := callsite.New(identity.Function("demo", "Panic"), func(context.Context, callsite.Args) (any, error) {
		panic("kaboom")
	})
	k := mustKind(t, weaver.New(), Definition{Name: "p", Targets: []*callsite.Site{site}, Hooks: recordingHooks(j, "p")})
	k.Enable(ctx)

	assert.PanicsWithValue(t, "kaboom", func() { _, _ = site.Invoke(ctx, callsite.Args{}) })
	assert.Equal(t, []string{"p.before(Panic)"}, j.events)
}
