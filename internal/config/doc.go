// Package config defines the format-agnostic model of an aspect plan, along
// with the Loader interface for reading plans from files.
//
// A plan declares aspects by name: which policy each uses, which call-sites
// it targets, and which registered advice it runs. Concrete loaders, such
// as for HCL and YAML, are provided in separate packages.
package config
