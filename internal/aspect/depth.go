package aspect

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

type depthInstance struct {
	instance
}

func (in *depthInstance) Invoke(ctx context.Context, next callsite.Func, args callsite.Args) (any, error) {
	jp := in.joinPoint(ctx, args)
	jp.Depth = in.kind.state.depth
	in.kind.hooks.before(jp)
	result, err := in.descend(jp.Context(), next, args)
	return in.finish(jp, result, err)
}

// descend runs the rest of the chain one level deeper. The counter is back
// to its previous value when descend returns or panics.
func (in *depthInstance) descend(ctx context.Context, next callsite.Func, args callsite.Args) (any, error) {
	st := in.kind.state
	st.depth++
	defer func() { st.depth-- }()
	return next(ctx, args)
}
