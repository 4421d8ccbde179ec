package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/identity"
)

// ValidatePlan performs a strict check of a plan against the registered
// advice and the call-site catalog. Every problem is reported, not just the
// first one.
func (r *Registry) ValidatePlan(ctx context.Context, plan *config.Plan, catalog *callsite.Catalog) error {
	_, err := r.validate(ctx, plan, catalog)
	return err
}

// validate checks the plan and returns the merged hooks of every aspect.
// Each advice factory is called exactly once per reference.
func (r *Registry) validate(ctx context.Context, plan *config.Plan, catalog *callsite.Catalog) (map[*config.AspectSpec]aspect.Hooks, error) {
	var errs []string
	logger := ctxlog.FromContext(ctx)
	hooks := make(map[*config.AspectSpec]aspect.Hooks, len(plan.Aspects))

	for _, spec := range plan.Aspects {
		if _, err := aspect.ParsePolicy(spec.Policy); err != nil {
			errs = append(errs, fmt.Sprintf("aspect '%s': %v", spec.Name, err))
		}
		if spec.Group != config.GroupProduction && spec.Group != config.GroupDebug {
			errs = append(errs, fmt.Sprintf("aspect '%s': unknown group '%s'", spec.Name, spec.Group))
		}

		sites, targetErrs := resolveTargets(spec, catalog)
		for _, e := range targetErrs {
			errs = append(errs, fmt.Sprintf("aspect '%s': %s", spec.Name, e))
		}
		if len(targetErrs) == 0 && len(sites) == 0 {
			errs = append(errs, fmt.Sprintf("aspect '%s': resolves to no call-sites", spec.Name))
		}
		for _, sel := range spec.Selectors {
			matched, err := catalog.Select(toSelector(sel))
			if err == nil && len(matched) == 0 {
				logger.Warn("Selector matches no call-sites.", "aspect", spec.Name, "scope", sel.Scope, "type", sel.Type, "name", sel.Name)
			}
		}

		if len(spec.Advice) == 0 {
			logger.Warn("Aspect declares no advice and will only add a layer.", "aspect", spec.Name)
		}
		var merged aspect.Hooks
		for _, ref := range spec.Advice {
			factory, ok := r.Advice(ref.Name)
			if !ok {
				errs = append(errs, fmt.Sprintf("aspect '%s': unknown advice '%s'", spec.Name, ref.Name))
				continue
			}
			h, err := factory(ctxlog.With(ctx, "aspect", spec.Name, "advice", ref.Name), Params(ref.Params))
			if err != nil {
				errs = append(errs, fmt.Sprintf("aspect '%s', advice '%s': %v", spec.Name, ref.Name, err))
				continue
			}
			merged = merged.Merge(h)
		}
		hooks[spec] = merged
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("plan validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return hooks, nil
}

// resolveTargets returns the explicit targets followed by every selected
// call-site, without duplicates.
func resolveTargets(spec *config.AspectSpec, catalog *callsite.Catalog) ([]*callsite.Site, []string) {
	var (
		sites []*callsite.Site
		errs  []string
	)
	seen := make(map[*callsite.Site]struct{})
	add := func(s *callsite.Site) {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			sites = append(sites, s)
		}
	}

	for _, raw := range spec.Targets {
		id, err := identity.Parse(raw)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		site, err := catalog.Resolve(id)
		if errors.Is(err, callsite.ErrUnknownTarget) {
			errs = append(errs, fmt.Sprintf("target '%s' is not a registered call-site", raw))
			continue
		}
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		add(site)
	}

	if len(spec.Selectors) > 0 {
		selectors := make([]callsite.Selector, 0, len(spec.Selectors))
		for _, sel := range spec.Selectors {
			selectors = append(selectors, toSelector(sel))
		}
		selected, err := catalog.Select(selectors...)
		if err != nil {
			errs = append(errs, err.Error())
		}
		for _, s := range selected {
			add(s)
		}
	}
	return sites, errs
}

func toSelector(sel *config.Selector) callsite.Selector {
	return callsite.Selector{Scope: sel.Scope, Type: sel.Type, Name: sel.Name}
}
