package aspect

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

// cflowInstance advises only calls that are not made as a consequence of
// another advised call of the same kind.
type cflowInstance struct {
	instance
}

func (in *cflowInstance) Invoke(ctx context.Context, next callsite.Func, args callsite.Args) (any, error) {
	if in.kind.state.withinCFlow {
		return next(ctx, args)
	}
	jp := in.joinPoint(ctx, args)
	result, err := in.within(jp, next, args)
	return in.finish(jp, result, err)
}

// within runs Before and the rest of the chain with the flag raised. The
// flag is lowered before the terminal hook, so calls made from After are
// advised as fresh control flows.
func (in *cflowInstance) within(jp *JoinPoint, next callsite.Func, args callsite.Args) (any, error) {
	st := in.kind.state
	st.withinCFlow = true
	defer func() { st.withinCFlow = false }()
	in.kind.hooks.before(jp)
	return next(jp.Context(), args)
}
