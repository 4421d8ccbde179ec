package aspect

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/identity"
	"github.com/specialistvlad/aspectgo/internal/weaver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCFlowFiresOncePerOutermostCall(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		ctx := context.Background()
		j := &journal{}
		c := newCountdown()
		k := mustKind(t, weaver.New(), Definition{
			Name:    "observer",
			Policy:  CFlow,
			Targets: []*callsite.Site{c.site},
			Hooks:   recordingHooks(j, "observer"),
		})
		var activeInside []bool
		c.probe = func(int) { activeInside = append(activeInside, k.Active()) }
		k.Enable(ctx)

		res, err := c.run(t, n)
		require.NoError(t, err)
		assert.Equal(t, n, res)
		assert.Equal(t, []string{"observer.before(Countdown)", "observer.after(Countdown)=" + strconv.Itoa(n)}, j.events)
		assert.Len(t, activeInside, n+1)
		for _, active := range activeInside {
			assert.True(t, active)
		}
		assert.False(t, k.Active())

		// A second outer trigger fires again, exactly once.
		_, err = c.run(t, n)
		require.NoError(t, err)
		assert.Len(t, j.events, 4)
	}
}

func TestCFlowErrorPath(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	c := newCountdown()
	c.fail = errors.New("bottom")
	k := mustKind(t, weaver.New(), Definition{
		Name:    "observer",
		Policy:  CFlow,
		Targets: []*callsite.Site{c.site},
		Hooks:   recordingHooks(j, "observer"),
	})
	k.Enable(ctx)

	_, err := c.run(t, 3)
	assert.Same(t, c.fail, err)
	assert.Equal(t, []string{"observer.before(Countdown)", "observer.after_error(Countdown)=bottom"}, j.events)
	assert.False(t, k.Active(), "the flag is lowered even when the flow fails")
}

func TestCFlowSuppressesMutualRecursion(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	var even, odd *callsite.Site
	even = callsite.New(identity.Function("demo", "Even"), func(ctx context.Context, args callsite.Args) (any, error) {
		n, _ := args.Int(0)
		if n == 0 {
			return true, nil
		}
		return odd.Invoke(ctx, callsite.Positional(n-1))
	})
	odd = callsite.New(identity.Function("demo", "Odd"), func(ctx context.Context, args callsite.Args) (any, error) {
		n, _ := args.Int(0)
		if n == 0 {
			return false, nil
		}
		return even.Invoke(ctx, callsite.Positional(n-1))
	})
	k := mustKind(t, weaver.New(), Definition{
		Name:    "observer",
		Policy:  CFlow,
		Targets: []*callsite.Site{even, odd},
		Hooks:   recordingHooks(j, "observer"),
	})
	k.Enable(ctx)

	res, err := even.Invoke(ctx, callsite.Positional(7))
	require.NoError(t, err)
	assert.Equal(t, false, res)
	assert.Equal(t, []string{"observer.before(Even)", "observer.after(Even)=false"}, j.events)
}

func TestCFlowReentryFromAfterIsFresh(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	c := newCountdown()
	reentered := false
	k := mustKind(t, weaver.New(), Definition{
		Name:    "observer",
		Policy:  CFlow,
		Targets: []*callsite.Site{c.site},
		Hooks: Hooks{
			Before: func(jp *JoinPoint) { j.add("before") },
			After: func(jp *JoinPoint, result any) {
				j.add("after=%v", result)
				if !reentered {
					reentered = true
					_, _ = c.site.Invoke(jp.Context(), callsite.Positional(1))
				}
			},
		},
	})
	k.Enable(ctx)

	_, err := c.run(t, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"before", "after=2", "before", "after=1"}, j.events)
}

func TestCFlowIsSharedAcrossTargetsOfTheKindOnly(t *testing.T) {
	ctx := context.Background()
	j := &journal{}
	leaf := callsite.New(identity.Method("demo", "Point", "MoveBy"), func(context.Context, callsite.Args) (any, error) {
		return nil, nil
	})
	root := callsite.New(identity.Method("demo", "Canvas", "MoveBy"), func(ctx context.Context, args callsite.Args) (any, error) {
		_, err := leaf.Invoke(ctx, args)
		return nil, err
	})
	w := weaver.New()
	mustKind(t, w, Definition{Name: "outer", Policy: CFlow, Targets: []*callsite.Site{root, leaf}, Hooks: recordingHooks(j, "outer")}).Enable(ctx)
	mustKind(t, w, Definition{Name: "other", Policy: CFlow, Targets: []*callsite.Site{leaf}, Hooks: recordingHooks(j, "other")}).Enable(ctx)

	_, err := root.Invoke(ctx, callsite.Args{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"outer.before(MoveBy)",
		"other.before(MoveBy)",
		"other.after(MoveBy)=<nil>",
		"outer.after(MoveBy)=<nil>",
	}, j.events)
}
