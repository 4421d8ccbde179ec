// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses plan files, decodes `aspect` blocks with gohcl, and
// evaluates advice parameters into cty values.
//
//	aspect "observer" {
//	  policy = "cflow"
//	  group  = "production"
//	  select {
//	    scope = "shapes"
//	    name  = "Move*"
//	  }
//	  advice "notify" {
//	    message = "made us redraw the screen"
//	  }
//	}
package hcl
