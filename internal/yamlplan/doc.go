// Package yamlplan loads aspect plans written in YAML. It produces the same
// config.Plan as the HCL loader, so the two formats can be mixed in one
// plan directory.
package yamlplan
