package aspect

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

// coverageInstance marks its target as covered on first use. The target was
// added to the kind's uncovered set when the instance was created.
type coverageInstance struct {
	instance
}

func (in *coverageInstance) Invoke(ctx context.Context, next callsite.Func, args callsite.Args) (any, error) {
	delete(in.kind.state.uncovered, in.target.Identity)
	jp := in.joinPoint(ctx, args)
	in.kind.hooks.before(jp)
	result, err := next(jp.Context(), args)
	return in.finish(jp, result, err)
}
