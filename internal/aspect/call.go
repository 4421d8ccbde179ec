package aspect

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

// callInstance is an execution instance that also captures who invoked the
// target. The caller comes from the frame stack the call-sites maintain in
// the context, not from stack inspection.
type callInstance struct {
	instance
}

func (in *callInstance) Invoke(ctx context.Context, next callsite.Func, args callsite.Args) (any, error) {
	jp := in.joinPoint(ctx, args)
	jp.Caller, _ = callsite.CallerFrom(ctx)
	in.kind.hooks.before(jp)
	result, err := next(jp.Context(), args)
	return in.finish(jp, result, err)
}
