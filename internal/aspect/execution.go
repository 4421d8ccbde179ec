package aspect

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

type executionInstance struct {
	instance
}

func (in *executionInstance) Invoke(ctx context.Context, next callsite.Func, args callsite.Args) (any, error) {
	jp := in.joinPoint(ctx, args)
	in.kind.hooks.before(jp)
	result, err := next(jp.Context(), args)
	return in.finish(jp, result, err)
}
