package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/aspectgo/internal/aspect"
	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/identity"
	"github.com/specialistvlad/aspectgo/internal/weaver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func echo(_ context.Context, args callsite.Args) (any, error) {
	return args.At(0), nil
}

func newCatalog() *callsite.Catalog {
	c := callsite.NewCatalog()
	c.Register(
		callsite.New(identity.Method("shapes", "Point", "MoveBy"), echo),
		callsite.New(identity.Method("shapes", "Line", "MoveBy"), echo),
		callsite.New(identity.Function("shapes", "Distance"), echo),
	)
	return c
}

type recordParams struct {
	Label string `cty:"label"`
}

func newTestRegistry(log *[]string) *Registry {
	r := New()
	r.RegisterAdvice("record", func(_ context.Context, p Params) (aspect.Hooks, error) {
		params := recordParams{Label: "call"}
		if err := p.Decode(&params); err != nil {
			return aspect.Hooks{}, err
		}
		return aspect.Hooks{
			Before: func(jp *aspect.JoinPoint) {
				*log = append(*log, params.Label+" "+jp.Target.String())
			},
		}, nil
	})
	r.RegisterAdvice("broken", func(context.Context, Params) (aspect.Hooks, error) {
		return aspect.Hooks{}, errors.New("always fails")
	})
	return r
}

func TestBuild_ResolvesTargetsAndMergesAdvice(t *testing.T) {
	// Arrange
	var log []string
	r := newTestRegistry(&log)
	catalog := newCatalog()
	plan := &config.Plan{Aspects: []*config.AspectSpec{
		{
			Name:      "observer",
			Policy:    "execution",
			Group:     config.GroupProduction,
			Targets:   []string{"shapes.Distance", "shapes.Point.MoveBy"},
			Selectors: []*config.Selector{{Type: "*", Name: "Move*"}},
			Advice: []*config.AdviceRef{
				{Name: "record", Params: map[string]cty.Value{"label": cty.StringVal("first")}},
				{Name: "record"},
			},
		},
		{Name: "off", Policy: "call", Group: config.GroupDebug, Disabled: true, Targets: []string{"shapes.Distance"}},
	}}
	ctx := context.Background()

	// Act
	built, err := r.Build(ctx, plan, catalog, weaver.New())

	// Assert
	require.NoError(t, err)
	require.Len(t, built, 1, "disabled aspects are skipped")
	kind := built[0].Kind
	assert.Equal(t, "observer", kind.Name())

	var ids []string
	for _, s := range kind.Targets() {
		ids = append(ids, s.Identity().String())
	}
	assert.Equal(t, []string{"shapes.Distance", "shapes.Point.MoveBy", "shapes.Line.MoveBy"}, ids)

	kind.Enable(ctx)
	site, _ := catalog.Lookup(identity.Function("shapes", "Distance"))
	_, err = site.Invoke(ctx, callsite.Positional(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"first shapes.Distance", "call shapes.Distance"}, log)
}

func TestValidatePlan_ReportsEveryProblem(t *testing.T) {
	var log []string
	r := newTestRegistry(&log)
	plan := &config.Plan{Aspects: []*config.AspectSpec{
		{Name: "a", Policy: "sometimes", Group: config.GroupProduction, Targets: []string{"shapes.Distance"}},
		{Name: "b", Policy: "call", Group: "staging", Targets: []string{"shapes.Nope"}},
		{Name: "c", Policy: "call", Group: config.GroupProduction, Targets: []string{"not an identity"}},
		{Name: "d", Policy: "call", Group: config.GroupProduction, Selectors: []*config.Selector{{Name: "Zzz*"}}},
		{Name: "e", Policy: "call", Group: config.GroupProduction, Targets: []string{"shapes.Distance"}, Advice: []*config.AdviceRef{{Name: "missing"}, {Name: "broken"}}},
		{Name: "f", Policy: "call", Group: config.GroupProduction, Selectors: []*config.Selector{{Name: "["}}},
	}}

	err := r.ValidatePlan(context.Background(), plan, newCatalog())

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "plan validation failed:")
	assert.Contains(t, msg, "aspect 'a': unknown policy")
	assert.Contains(t, msg, "aspect 'b': unknown group 'staging'")
	assert.Contains(t, msg, "aspect 'b': target 'shapes.Nope' is not a registered call-site")
	assert.Contains(t, msg, "aspect 'c':")
	assert.Contains(t, msg, "aspect 'd': resolves to no call-sites")
	assert.Contains(t, msg, "aspect 'e': unknown advice 'missing'")
	assert.Contains(t, msg, "aspect 'e', advice 'broken': always fails")
	assert.Contains(t, msg, "aspect 'f': invalid pattern")
}

func TestBuild_RejectsInvalidPlan(t *testing.T) {
	var log []string
	r := newTestRegistry(&log)
	plan := &config.Plan{Aspects: []*config.AspectSpec{
		{Name: "a", Policy: "call", Group: config.GroupProduction, Targets: []string{"shapes.Distance"},
			Advice: []*config.AdviceRef{{Name: "record", Params: map[string]cty.Value{"colour": cty.True}}}},
	}}

	built, err := r.Build(context.Background(), plan, newCatalog(), weaver.New())

	require.Error(t, err)
	assert.Nil(t, built)
	assert.Contains(t, err.Error(), `unsupported parameter "colour"`)
}

func TestBuild_CallsEachFactoryOnce(t *testing.T) {
	calls := 0
	r := New()
	r.RegisterAdvice("counted", func(context.Context, Params) (aspect.Hooks, error) {
		calls++
		return aspect.Hooks{}, nil
	})
	plan := &config.Plan{Aspects: []*config.AspectSpec{
		{Name: "a", Policy: "call", Group: config.GroupProduction, Targets: []string{"shapes.Distance"},
			Advice: []*config.AdviceRef{{Name: "counted"}, {Name: "counted"}}},
		{Name: "b", Policy: "depth", Group: config.GroupDebug, Targets: []string{"shapes.Point.MoveBy"},
			Advice: []*config.AdviceRef{{Name: "counted"}}},
	}}

	built, err := r.Build(context.Background(), plan, newCatalog(), weaver.New())

	require.NoError(t, err)
	assert.Len(t, built, 2)
	assert.Equal(t, 3, calls, "validation and building share one factory call per advice reference")
}
