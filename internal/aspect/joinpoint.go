package aspect

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/identity"
)

// JoinPoint describes one advised invocation to the hooks that observe it.
// The same JoinPoint is passed to Before and to the terminal hook.
type JoinPoint struct {
	// Target is the identity of the intercepted call-site.
	Target identity.Identity
	// Core is the original, unwoven func of the target.
	Core callsite.Func
	// Args are the invocation's arguments.
	Args callsite.Args
	// Caller is whoever invoked the target. Set only by the Call policy.
	Caller identity.Identity
	// Depth is the number of advised calls of this kind enclosing this one.
	// Set only by the Depth policy.
	Depth int

	ctx    context.Context
	kind   *Kind
	values map[any]any
}

// Context returns the context the chain continues with.
func (jp *JoinPoint) Context() context.Context {
	return jp.ctx
}

// SetContext replaces the context passed further down the chain. It has an
// effect only when called from Before.
func (jp *JoinPoint) SetContext(ctx context.Context) {
	if ctx != nil {
		jp.ctx = ctx
	}
}

// Logger returns the logger carried by the invocation's context.
func (jp *JoinPoint) Logger() *slog.Logger {
	return ctxlog.FromContext(jp.ctx)
}

// Kind returns the aspect kind whose advice is running.
func (jp *JoinPoint) Kind() *Kind {
	return jp.kind
}

// Store keeps a value for the rest of this invocation's hooks.
func (jp *JoinPoint) Store(key, value any) {
	if jp.values == nil {
		jp.values = make(map[any]any)
	}
	jp.values[key] = value
}

// Load returns a value saved with Store.
func (jp *JoinPoint) Load(key any) (any, bool) {
	v, ok := jp.values[key]
	return v, ok
}
