package aspect

import (
	"context"
	"fmt"
	"testing"

	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/identity"
	"github.com/specialistvlad/aspectgo/internal/weaver"
	"github.com/stretchr/testify/require"
)

// journal records advice events in order.
type journal struct {
	events []string
}

func (j *journal) add(format string, args ...any) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// recordingHooks returns hooks that write "<label>.before(<target>)" style
// entries into j.
func recordingHooks(j *journal, label string) Hooks {
	return Hooks{
		Before: func(jp *JoinPoint) {
			j.add("%s.before(%s)", label, jp.Target.Name)
		},
		After: func(jp *JoinPoint, result any) {
			j.add("%s.after(%s)=%v", label, jp.Target.Name, result)
		},
		AfterError: func(jp *JoinPoint, err error) {
			j.add("%s.after_error(%s)=%v", label, jp.Target.Name, err)
		},
	}
}

// countdown is a self-recursive call-site: Countdown(n) calls Countdown(n-1)
// through the call-site until n is zero, then returns fail if set.
type countdown struct {
	site  *callsite.Site
	probe func(n int)
	fail  error
}

func newCountdown() *countdown {
	c := &countdown{}
	c.site = callsite.New(identity.Function("demo", "Countdown"), func(ctx context.Context, args callsite.Args) (any, error) {
		n, err := args.Int(0)
		if err != nil {
			return nil, err
		}
		if c.probe != nil {
			c.probe(n)
		}
		if n == 0 {
			if c.fail != nil {
				return nil, c.fail
			}
			return 0, nil
		}
		res, err := c.site.Invoke(ctx, callsite.Positional(n-1))
		if err != nil {
			return nil, err
		}
		return res.(int) + 1, nil
	})
	return c
}

func (c *countdown) run(t *testing.T, n int) (any, error) {
	t.Helper()
	return c.site.Invoke(context.Background(), callsite.Positional(n))
}

func mustKind(t *testing.T, w *weaver.Weaver, def Definition) *Kind {
	t.Helper()
	k, err := New(w, def)
	require.NoError(t, err)
	return k
}
