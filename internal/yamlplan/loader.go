package yamlplan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type document struct {
	Aspects []aspectDoc `yaml:"aspects"`
}

type aspectDoc struct {
	Name     string        `yaml:"name"`
	Policy   string        `yaml:"policy"`
	Group    string        `yaml:"group,omitempty"`
	Disabled bool          `yaml:"disabled,omitempty"`
	Targets  []string      `yaml:"targets,omitempty"`
	Select   []selectorDoc `yaml:"select,omitempty"`
	Advice   []adviceDoc   `yaml:"advice,omitempty"`
}

type selectorDoc struct {
	Scope string `yaml:"scope,omitempty"`
	Type  string `yaml:"type,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

type adviceDoc struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params,omitempty"`
}

// Loader reads .yaml and .yml plan files.
type Loader struct{}

// NewLoader creates a new YAML plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := config.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}

	plan := &config.Plan{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read plan %s: %w", file, err)
		}
		part, err := Parse(data, file)
		if err != nil {
			return nil, err
		}
		if err := plan.Merge(part); err != nil {
			return nil, err
		}
		logger.Debug("Loaded plan file.", "file", file, "aspects", len(part.Aspects))
	}
	return plan, nil
}

// Parse decodes one YAML plan document. Unknown keys are rejected.
func Parse(data []byte, filename string) (*config.Plan, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse plan %s: %w", filename, err)
	}

	plan := &config.Plan{}
	for i, a := range doc.Aspects {
		if a.Name == "" {
			return nil, fmt.Errorf("parse plan %s: aspect #%d has no name", filename, i+1)
		}
		if a.Policy == "" {
			return nil, fmt.Errorf("parse plan %s: aspect %q has no policy", filename, a.Name)
		}
		spec := &config.AspectSpec{
			Name:     a.Name,
			Policy:   a.Policy,
			Group:    a.Group,
			Disabled: a.Disabled,
			Targets:  a.Targets,
			Source:   filename,
		}
		if spec.Group == "" {
			spec.Group = config.GroupProduction
		}
		for _, s := range a.Select {
			spec.Selectors = append(spec.Selectors, &config.Selector{Scope: s.Scope, Type: s.Type, Name: s.Name})
		}
		for _, adv := range a.Advice {
			params, err := toParams(adv.Params)
			if err != nil {
				return nil, fmt.Errorf("parse plan %s: aspect %q, advice %q: %w", filename, a.Name, adv.Name, err)
			}
			spec.Advice = append(spec.Advice, &config.AdviceRef{Name: adv.Name, Params: params})
		}
		if err := plan.Merge(&config.Plan{Aspects: []*config.AspectSpec{spec}}); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
