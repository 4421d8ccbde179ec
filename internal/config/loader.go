package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/aspectgo/internal/ctxlog"
)

// Loader is the interface for a format-specific plan loader.
type Loader interface {
	// Load reads every plan file under the given paths and merges them
	// into one Plan.
	Load(ctx context.Context, paths ...string) (*Plan, error)
	// Extensions lists the file extensions the loader handles, with the
	// leading dot.
	Extensions() []string
}

// Multi dispatches files to loaders by extension and merges the results.
type Multi struct {
	loaders map[string]Loader
}

// NewMulti creates a loader that combines the given loaders.
func NewMulti(loaders ...Loader) *Multi {
	m := &Multi{loaders: make(map[string]Loader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			m.loaders[ext] = l
		}
	}
	return m
}

// Extensions implements Loader.
func (m *Multi) Extensions() []string {
	out := make([]string, 0, len(m.loaders))
	for ext := range m.loaders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Load implements Loader.
func (m *Multi) Load(ctx context.Context, paths ...string) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := FindFiles(paths, m.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered plan files.", "count", len(files))

	plan := &Plan{}
	for _, file := range files {
		loader := m.loaders[strings.ToLower(filepath.Ext(file))]
		part, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := plan.Merge(part); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// Merge appends other's aspects to p. Aspect names must be unique.
func (p *Plan) Merge(other *Plan) error {
	for _, a := range other.Aspects {
		if prev, exists := p.Lookup(a.Name); exists {
			return fmt.Errorf("aspect %q declared in %s is already declared in %s", a.Name, a.Source, prev.Source)
		}
		p.Aspects = append(p.Aspects, a)
	}
	return nil
}

// FindFiles walks all given paths and returns a flat, de-duplicated list of
// files with one of the given extensions. A path that does not exist is
// skipped.
func FindFiles(paths []string, extensions ...string) ([]string, error) {
	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = struct{}{}
	}
	matches := func(p string) bool {
		_, ok := wanted[strings.ToLower(filepath.Ext(p))]
		return ok
	}

	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && matches(p) {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if matches(path) {
			add(path)
		}
	}
	return allFiles, nil
}
