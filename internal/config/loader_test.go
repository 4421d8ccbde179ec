package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	exts  []string
	calls []string
}

func (f *fakeLoader) Extensions() []string { return f.exts }

func (f *fakeLoader) Load(_ context.Context, paths ...string) (*Plan, error) {
	plan := &Plan{}
	for _, p := range paths {
		f.calls = append(f.calls, filepath.Base(p))
		plan.Aspects = append(plan.Aspects, &AspectSpec{Name: filepath.Base(p), Source: p})
	}
	return plan, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.hcl"))
	touch(t, filepath.Join(dir, "nested", "b.HCL"))
	touch(t, filepath.Join(dir, "c.txt"))

	files, err := FindFiles([]string{dir, filepath.Join(dir, "a.hcl"), filepath.Join(dir, "missing")}, ".hcl")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "nested", "b.HCL"),
	}, files)
}

func TestMulti_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "one.hcl"))
	touch(t, filepath.Join(dir, "two.yaml"))
	hclLoader := &fakeLoader{exts: []string{".hcl"}}
	yamlLoader := &fakeLoader{exts: []string{".yaml", ".yml"}}

	m := NewMulti(hclLoader, yamlLoader)
	plan, err := m.Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []string{".hcl", ".yaml", ".yml"}, m.Extensions())
	assert.Equal(t, []string{"one.hcl"}, hclLoader.calls)
	assert.Equal(t, []string{"two.yaml"}, yamlLoader.calls)
	assert.Len(t, plan.Aspects, 2)
}

func TestPlan_Merge_RejectsDuplicates(t *testing.T) {
	p := &Plan{Aspects: []*AspectSpec{{Name: "a", Source: "x.hcl"}}}

	err := p.Merge(&Plan{Aspects: []*AspectSpec{{Name: "a", Source: "y.yaml"}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.hcl")
	assert.Contains(t, err.Error(), "y.yaml")
}

func TestPlan_InGroup(t *testing.T) {
	p := &Plan{Aspects: []*AspectSpec{
		{Name: "a", Group: GroupProduction},
		{Name: "b", Group: GroupDebug},
		{Name: "c", Group: GroupProduction, Disabled: true},
		{Name: "d", Group: GroupProduction},
	}}

	var names []string
	for _, a := range p.InGroup(GroupProduction) {
		names = append(names, a.Name)
	}

	assert.Equal(t, []string{"a", "d"}, names)
	_, ok := p.Lookup("b")
	assert.True(t, ok)
}
