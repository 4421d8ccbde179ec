package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/weaver"
)

// Built pairs a plan aspect with the kind built from it.
type Built struct {
	Spec *config.AspectSpec
	Kind *aspect.Kind
}

// Build validates the plan and builds a kind for every aspect that is not
// disabled, in declaration order. The hooks are the ones produced during
// validation, so no factory runs twice. Nothing is attached yet.
func (r *Registry) Build(ctx context.Context, plan *config.Plan, catalog *callsite.Catalog, w *weaver.Weaver) ([]*Built, error) {
	logger := ctxlog.FromContext(ctx)
	hooks, err := r.validate(ctx, plan, catalog)
	if err != nil {
		return nil, err
	}

	var out []*Built
	for _, spec := range plan.Aspects {
		if spec.Disabled {
			logger.Debug("Skipping disabled aspect.", "aspect", spec.Name)
			continue
		}
		policy, err := aspect.ParsePolicy(spec.Policy)
		if err != nil {
			return nil, fmt.Errorf("aspect '%s': %w", spec.Name, err)
		}
		sites, errs := resolveTargets(spec, catalog)
		if len(errs) > 0 {
			return nil, fmt.Errorf("aspect '%s': %s", spec.Name, errs[0])
		}

		kind, err := aspect.New(w, aspect.Definition{
			Name:    spec.Name,
			Policy:  policy,
			Targets: sites,
			Hooks:   hooks[spec],
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("Built aspect.", "aspect", spec.Name, "policy", policy.String(), "targets", len(sites), "advice", len(spec.Advice))
		out = append(out, &Built{Spec: spec, Kind: kind})
	}
	return out, nil
}
