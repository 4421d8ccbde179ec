package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/aspectgo/internal/app"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/hcl"
	"github.com/specialistvlad/aspectgo/internal/registry"
	"github.com/specialistvlad/aspectgo/internal/yamlplan"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of one application run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// WritePlan writes the given files, keyed by relative path, into a fresh
// temporary directory and returns it.
func WritePlan(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// NewLoader returns the loader the CLI uses: HCL and YAML plans side by side.
func NewLoader() config.Loader {
	return config.NewMulti(hcl.NewLoader(), yamlplan.NewLoader())
}

// RunApp writes files as a plan, builds the app with cfg (PlanPath is
// filled in) and runs it. A failure to build is reported in Err with a nil
// App.
func RunApp(ctx context.Context, t *testing.T, cfg app.Config, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	cfg.PlanPath = WritePlan(t, files)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	defer func() {
		if os.Getenv("ASPECTGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	}()

	var testApp *app.App
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp, err = app.NewApp(out, appConfig, NewLoader(), modules...)
	}()
	if err != nil {
		return &HarnessResult{Output: out.String(), Err: err}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{Output: out.String(), Err: runErr, App: testApp}
}
