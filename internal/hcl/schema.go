package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block of a plan file.
type fileRoot struct {
	Aspects []*aspectBlock `hcl:"aspect,block"`
}

// aspectBlock represents an `aspect` block.
type aspectBlock struct {
	Name     string         `hcl:"name,label"`
	Policy   string         `hcl:"policy"`
	Group    string         `hcl:"group,optional"`
	Disabled bool           `hcl:"disabled,optional"`
	Targets  []string       `hcl:"targets,optional"`
	Selects  []*selectBlock `hcl:"select,block"`
	Advice   []*adviceBlock `hcl:"advice,block"`
}

// selectBlock represents a `select` block within an aspect.
type selectBlock struct {
	Scope string `hcl:"scope,optional"`
	Type  string `hcl:"type,optional"`
	Name  string `hcl:"name,optional"`
}

// adviceBlock represents an `advice` block. Its attributes are the advice
// parameters and are evaluated separately.
type adviceBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
