package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// translateAspect converts the HCL-specific aspect schema into the agnostic model.
func (l *Loader) translateAspect(b *aspectBlock, file string) (*config.AspectSpec, error) {
	spec := &config.AspectSpec{
		Name:     b.Name,
		Policy:   b.Policy,
		Group:    b.Group,
		Disabled: b.Disabled,
		Targets:  b.Targets,
		Source:   file,
	}
	if spec.Group == "" {
		spec.Group = config.GroupProduction
	}
	for _, s := range b.Selects {
		spec.Selectors = append(spec.Selectors, &config.Selector{Scope: s.Scope, Type: s.Type, Name: s.Name})
	}
	for _, a := range b.Advice {
		params, diags := l.evaluateParams(a.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("aspect %q, advice %q: %w", b.Name, a.Name, diags)
		}
		spec.Advice = append(spec.Advice, &config.AdviceRef{Name: a.Name, Params: params})
	}
	return spec, nil
}

// evaluateParams evaluates every attribute of an advice block. Params are
// constant expressions: no variables or functions are available.
func (l *Loader) evaluateParams(body hcl.Body) (map[string]cty.Value, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	params := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		params[name] = val
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return params, diags
}
