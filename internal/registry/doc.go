// Package registry provides the glue between aspect plans and compiled Go
// advice.
//
// The Registry maps the advice names used in plan files (e.g. "trace") to
// the Go factories that build their hooks. During application startup the
// registry is populated by Modules, the loaded plan is validated against it
// and against the call-site catalog, and only then are aspect kinds built.
// Validating first keeps a misspelled advice or target from surfacing as a
// half-woven program.
package registry
