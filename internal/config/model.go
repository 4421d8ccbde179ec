package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Group names decide when an aspect is enabled.
const (
	GroupProduction = "production"
	GroupDebug      = "debug"
)

// Plan is the unified representation of every aspect declared in the
// loaded files.
type Plan struct {
	Aspects []*AspectSpec
}

// AspectSpec is the format-agnostic representation of an `aspect` block.
type AspectSpec struct {
	Name     string
	Policy   string
	Group    string
	Disabled bool
	// Targets are explicit call-site identities, in canonical form.
	Targets []string
	// Selectors add every catalog call-site they match.
	Selectors []*Selector
	Advice    []*AdviceRef
	// Source is the file the aspect was declared in.
	Source string
}

// Selector is the format-agnostic representation of a `select` block.
type Selector struct {
	Scope string
	Type  string
	Name  string
}

// AdviceRef names a registered advice and the parameters to build it with.
type AdviceRef struct {
	Name   string
	Params map[string]cty.Value
}

// Lookup returns the aspect with the given name.
func (p *Plan) Lookup(name string) (*AspectSpec, bool) {
	for _, a := range p.Aspects {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// InGroup returns the enabled aspects of a group, in declaration order.
func (p *Plan) InGroup(group string) []*AspectSpec {
	var out []*AspectSpec
	for _, a := range p.Aspects {
		if a.Disabled {
			continue
		}
		if a.Group == group {
			out = append(out, a)
		}
	}
	return out
}
