package notify

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/registry"
)

// DefaultNotifyMessage ends every notification unless a plan overrides it.
const DefaultNotifyMessage = "made us redraw the screen"

// Module implements the registry.Module interface for this package. The
// notify advice is the observer: after every successful advised call it
// tells out that the screen has to be redrawn.
type Module struct {
	out   io.Writer
	count atomic.Int64
}

// Params are the parameters of an `advice "notify"` block.
type Params struct {
	Message string `cty:"message"`
}

// New creates the notify module writing to out.
func New(out io.Writer) *Module {
	if out == nil {
		out = io.Discard
	}
	return &Module{out: out}
}

// Register registers the advice with the registry.
func (n *Module) Register(r *registry.Registry) {
	r.RegisterAdvice("notify", n.factory)
}

// Count returns how many notifications were sent.
func (n *Module) Count() int64 {
	return n.count.Load()
}

func (n *Module) factory(_ context.Context, p registry.Params) (aspect.Hooks, error) {
	params := Params{Message: DefaultNotifyMessage}
	if err := p.Decode(&params); err != nil {
		return aspect.Hooks{}, err
	}
	return aspect.Hooks{
		After: func(jp *aspect.JoinPoint, _ any) {
			n.count.Add(1)
			fmt.Fprintf(n.out, "%s on %v %s\n", jp.Target.Short(), jp.Args.Receiver(), params.Message)
		},
	}, nil
}
