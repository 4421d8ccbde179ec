package callsite

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/identity"
)

type frameKey struct{}

// frame is one entry of the intercepted call stack carried in a context.
type frame struct {
	id     identity.Identity
	parent *frame
}

func pushFrame(ctx context.Context, id identity.Identity) context.Context {
	parent, _ := ctx.Value(frameKey{}).(*frame)
	return context.WithValue(ctx, frameKey{}, &frame{id: id, parent: parent})
}

// WithCaller returns a context that names the code about to make a call.
// Code outside any call-site can use it to identify itself to caller-aware
// advice.
func WithCaller(ctx context.Context, caller identity.Identity) context.Context {
	return pushFrame(ctx, caller)
}

// CurrentFrom returns the innermost call-site executing in ctx.
func CurrentFrom(ctx context.Context) (identity.Identity, bool) {
	f, _ := ctx.Value(frameKey{}).(*frame)
	if f == nil {
		return identity.Identity{}, false
	}
	return f.id, true
}

// CallerFrom returns the identity of whatever invoked the innermost
// call-site executing in ctx: the enclosing call-site, or the name given to
// WithCaller.
func CallerFrom(ctx context.Context) (identity.Identity, bool) {
	f, _ := ctx.Value(frameKey{}).(*frame)
	if f == nil || f.parent == nil {
		return identity.Identity{}, false
	}
	return f.parent.id, true
}

// StackFrom returns the intercepted call stack, innermost first.
func StackFrom(ctx context.Context) []identity.Identity {
	var stack []identity.Identity
	for f, _ := ctx.Value(frameKey{}).(*frame); f != nil; f = f.parent {
		stack = append(stack, f.id)
	}
	return stack
}
