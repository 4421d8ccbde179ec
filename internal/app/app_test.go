package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/aspectgo/internal/app"
	harness "github.com/specialistvlad/aspectgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

const observerPlan = `
aspect "observer" {
  policy = "%s"
  select {
    scope = "shapes"
    type  = "*"
    name  = "MoveBy"
  }
  advice "notify" {}
}
`

func planWithPolicy(policy string) map[string]string {
	return map[string]string{"observer.hcl": strings.Replace(observerPlan, "%s", policy, 1)}
}

func TestRun_CFlowObserverNotifiesOncePerMove(t *testing.T) {
	// Arrange & Act
	res := harness.RunApp(context.Background(), t, app.Config{}, planWithPolicy("cflow"))

	// Assert
	require.NoError(t, res.Err)
	assert.Contains(t, res.Output, "About to move a single point.")
	assert.Contains(t, res.Output, "About to move a canvas containing shapes containing lines containing points.")
	assert.Equal(t, 4, strings.Count(res.Output, "made us redraw the screen"))
	assert.EqualValues(t, 4, res.App.Notifications())
}

func TestRun_ExecutionObserverNotifiesEveryNestedMove(t *testing.T) {
	res := harness.RunApp(context.Background(), t, app.Config{}, planWithPolicy("execution"))

	require.NoError(t, res.Err)
	// point 1, line 1+2, square 1+4*3, canvas 1+13+3+1
	assert.EqualValues(t, 35, res.App.Notifications())
}

func TestRun_UnweavesEverythingAfterwards(t *testing.T) {
	res := harness.RunApp(context.Background(), t, app.Config{}, planWithPolicy("cflow"))
	require.NoError(t, res.Err)

	for _, site := range res.App.Catalog().All() {
		assert.False(t, res.App.Weaver().Woven(site), site.String())
	}
	assert.Equal(t, 0, res.App.Weaver().Registry().Len())
}

func TestRun_DebugGroupRequiresDebug(t *testing.T) {
	files := map[string]string{
		"trace.yaml": `
aspects:
  - name: tracer
    policy: depth
    group: debug
    select:
      - scope: shapes
    advice:
      - name: trace
`,
	}

	quiet := harness.RunApp(context.Background(), t, app.Config{}, files)
	require.NoError(t, quiet.Err)
	assert.NotContains(t, quiet.Output, `msg="-->`)

	loud := harness.RunApp(context.Background(), t, app.Config{Debug: true}, files)
	require.NoError(t, loud.Err)
	assert.Contains(t, loud.Output, `msg="--> shapes.Scene.NewPoint"`)
	assert.Contains(t, loud.Output, `msg="----> shapes.Line.MoveBy"`, "nested moves are indented")
}

func TestRun_CoverageReportsUninvokedTargets(t *testing.T) {
	files := map[string]string{
		"coverage.hcl": `
aspect "coverage" {
  policy = "coverage"
  select {
    scope = "shapes"
  }
}
`,
	}

	res := harness.RunApp(context.Background(), t, app.Config{}, files)

	require.NoError(t, res.Err)
	assert.Equal(t, map[string][]string{"coverage": {"github.com/specialistvlad/aspectgo/internal/shapes.Distance"}}, res.App.Coverage())
	assert.Contains(t, res.Output, "Targets never invoked.")
}

func TestRun_MetricsAdviceRecordsCalls(t *testing.T) {
	files := map[string]string{
		"metrics.hcl": `
aspect "timing" {
  policy = "execution"
  targets = ["shapes.Point.MoveBy"]
  advice "metrics" {}
}
`,
	}

	res := harness.RunApp(context.Background(), t, app.Config{}, files)

	require.NoError(t, res.Err)
	series, err := testutil.GatherAndCount(res.App.Metrics().Registry(), "aspect_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestRun_SpanAdviceWithStdoutExporter(t *testing.T) {
	files := map[string]string{
		"span.hcl": `
aspect "spans" {
  policy = "cflow"
  targets = ["shapes.Canvas.MoveBy"]
  advice "span" {}
}
`,
	}

	res := harness.RunApp(context.Background(), t, app.Config{TraceExporter: "stdout"}, files)

	require.NoError(t, res.Err)
	assert.Contains(t, res.Output, `"Name": "shapes.Canvas.MoveBy"`)
}

func TestNewApp_InvalidPlan(t *testing.T) {
	files := map[string]string{
		"bad.hcl": `
aspect "bad" {
  policy  = "sometimes"
  targets = ["shapes.Triangle.MoveBy"]
  advice "confetti" {}
}
`,
	}

	res := harness.RunApp(context.Background(), t, app.Config{}, files)

	require.Error(t, res.Err)
	assert.Nil(t, res.App)
	assert.Contains(t, res.Err.Error(), "plan validation failed")
	assert.Contains(t, res.Err.Error(), "unknown policy")
	assert.Contains(t, res.Err.Error(), "shapes.Triangle.MoveBy")
	assert.Contains(t, res.Err.Error(), "unknown advice 'confetti'")
}

func TestNewApp_FailureShutsDownTracing(t *testing.T) {
	dir := harness.WritePlan(t, map[string]string{
		"bad.hcl": `
aspect "bad" {
  policy  = "cflow"
  targets = ["shapes.Triangle.MoveBy"]
}
`,
	})
	out := &harness.SafeBuffer{}
	cfg := &app.Config{PlanPath: dir, LogFormat: "text", LogLevel: "error", TraceExporter: "stdout"}

	a, err := app.NewApp(out, cfg, harness.NewLoader())

	require.Error(t, err)
	assert.Nil(t, a)
	_, span := otel.GetTracerProvider().Tracer("test").Start(context.Background(), "after-failed-startup")
	span.End()
	assert.False(t, span.IsRecording())
	assert.NotContains(t, out.String(), "after-failed-startup", "the exporter must be shut down")
}

func TestRun_HoldWaitsForCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := harness.RunApp(ctx, t, app.Config{Hold: true, Scenario: app.ScenarioNone}, planWithPolicy("cflow"))

	require.NoError(t, res.Err)
	assert.Contains(t, res.Output, "Holding aspects woven until interrupted.")
}
