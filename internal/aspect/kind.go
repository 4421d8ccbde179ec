package aspect

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/identity"
	"github.com/specialistvlad/aspectgo/internal/weaver"
)

// Definition describes an aspect kind.
type Definition struct {
	Name    string
	Policy  Policy
	Targets []*callsite.Site
	Hooks   Hooks
}

// state is the policy state shared by every instance of one Kind.
type state struct {
	depth       int
	withinCFlow bool
	uncovered   map[identity.Identity]struct{}
}

// Kind is an aspect kind bound to a weaver. It implements weaver.Kind.
type Kind struct {
	name    string
	policy  Policy
	targets []*callsite.Site
	hooks   Hooks
	weaver  *weaver.Weaver
	state   *state
}

// New creates a Kind from a definition.
func New(w *weaver.Weaver, def Definition) (*Kind, error) {
	if w == nil {
		return nil, errors.New("aspect requires a weaver")
	}
	if def.Name == "" {
		return nil, errors.New("aspect name cannot be empty")
	}
	if !def.Policy.Valid() {
		return nil, fmt.Errorf("aspect %q: invalid policy %s", def.Name, def.Policy)
	}
	targets := make([]*callsite.Site, 0, len(def.Targets))
	for i, t := range def.Targets {
		if t == nil {
			return nil, fmt.Errorf("aspect %q: target %d is nil", def.Name, i)
		}
		targets = append(targets, t)
	}
	return &Kind{
		name:    def.Name,
		policy:  def.Policy,
		targets: targets,
		hooks:   def.Hooks,
		weaver:  w,
		state:   &state{uncovered: make(map[identity.Identity]struct{})},
	}, nil
}

// Name returns the kind's name.
func (k *Kind) Name() string {
	return k.name
}

// Policy returns the kind's activation policy.
func (k *Kind) Policy() Policy {
	return k.policy
}

// Targets returns the call-sites the kind is declared on.
func (k *Kind) Targets() []*callsite.Site {
	out := make([]*callsite.Site, len(k.targets))
	copy(out, k.targets)
	return out
}

// Enable attaches the kind to every declared target and returns how many
// attachments were made.
func (k *Kind) Enable(ctx context.Context) int {
	attached := 0
	for _, t := range k.targets {
		if k.weaver.Attach(ctx, k, t) {
			attached++
		}
	}
	ctxlog.FromContext(ctx).Debug("Aspect enabled.", "aspect", k.name, "policy", k.policy.String(), "attached", attached)
	return attached
}

// Disable detaches the kind from every declared target and returns how
// many attachments were removed.
func (k *Kind) Disable(ctx context.Context) int {
	detached := 0
	for _, t := range k.targets {
		if k.weaver.Detach(ctx, k, t) {
			detached++
		}
	}
	ctxlog.FromContext(ctx).Debug("Aspect disabled.", "aspect", k.name, "detached", detached)
	return detached
}

// Active reports whether an advised call of this kind is in progress. It
// is meaningful for the Depth and CFlow policies and false otherwise.
func (k *Kind) Active() bool {
	switch k.policy {
	case Depth:
		return k.state.depth > 0
	case CFlow:
		return k.state.withinCFlow
	default:
		return false
	}
}

// Depth returns the number of advised calls of this kind currently on the
// stack. Only the Depth policy tracks it.
func (k *Kind) Depth() int {
	return k.state.depth
}

// Uncovered returns the targets that had an instance of this kind attached
// but were never invoked through it, sorted by identity. Only the Coverage
// policy tracks it.
func (k *Kind) Uncovered() []identity.Identity {
	out := make([]identity.Identity, 0, len(k.state.uncovered))
	for id := range k.state.uncovered {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return identity.Less(out[i], out[j]) })
	return out
}

// NewInstance implements weaver.Kind.
func (k *Kind) NewInstance(t weaver.Target) weaver.Instance {
	base := instance{kind: k, target: t}
	switch k.policy {
	case Call:
		return &callInstance{base}
	case Depth:
		return &depthInstance{base}
	case CFlow:
		return &cflowInstance{base}
	case Coverage:
		k.state.uncovered[t.Identity] = struct{}{}
		return &coverageInstance{base}
	default:
		return &executionInstance{base}
	}
}

// instance carries what every policy variant needs.
type instance struct {
	kind   *Kind
	target weaver.Target
}

func (in *instance) joinPoint(ctx context.Context, args callsite.Args) *JoinPoint {
	return &JoinPoint{
		Target: in.target.Identity,
		Core:   in.target.Core,
		Args:   args,
		ctx:    ctx,
		kind:   in.kind,
	}
}

// finish runs the terminal hook for the outcome and hands the outcome back
// unchanged.
func (in *instance) finish(jp *JoinPoint, result any, err error) (any, error) {
	if err != nil {
		in.kind.hooks.afterError(jp, err)
		return result, err
	}
	in.kind.hooks.after(jp, result)
	return result, nil
}
