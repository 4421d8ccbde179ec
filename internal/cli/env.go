package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envDefaults are the flag defaults, overridable from the environment.
type envDefaults struct {
	Plan          string `env:"ASPECTGO_PLAN"`
	LogFormat     string `env:"ASPECTGO_LOG_FORMAT"     envDefault:"text"`
	LogLevel      string `env:"ASPECTGO_LOG_LEVEL"      envDefault:"info"`
	Debug         bool   `env:"ASPECTGO_DEBUG"`
	DiagPort      int    `env:"ASPECTGO_DIAG_PORT"`
	TraceExporter string `env:"ASPECTGO_TRACE_EXPORTER" envDefault:"none"`
	Hold          bool   `env:"ASPECTGO_HOLD"`
	Scenario      string `env:"ASPECTGO_SCENARIO"       envDefault:"figures"`
}

// loadEnv reads the defaults from environ, or from the process environment
// when environ is nil.
func loadEnv(environ map[string]string) (envDefaults, error) {
	var d envDefaults
	if err := env.ParseWithOptions(&d, env.Options{Environment: environ}); err != nil {
		return envDefaults{}, fmt.Errorf("parse env: %w", err)
	}
	return d, nil
}
