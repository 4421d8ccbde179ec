package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/aspectgo/internal/observability"
)

// Scenarios the app can run once the plan is woven.
const (
	ScenarioFigures = "figures"
	ScenarioNone    = "none"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath string // .hcl and .yaml plan files

	LogFormat string
	LogLevel  string
	// Debug also enables the aspects of the debug group.
	Debug bool
	// DiagPort serves /health, /metrics and /coverage. 0 is disabled.
	DiagPort      int
	TraceExporter string
	// Hold keeps the aspects woven until the run context is cancelled.
	Hold     bool
	Scenario string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	if cfg.DiagPort < 0 || cfg.DiagPort > 65535 {
		return nil, fmt.Errorf("DiagPort %d is out of range", cfg.DiagPort)
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", LogFormatText, LogFormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q: must be one of %s, %s", cfg.LogFormat, LogFormatText, LogFormatJSON)
	}

	switch cfg.Scenario {
	case "":
		cfg.Scenario = ScenarioFigures
	case ScenarioFigures, ScenarioNone:
	default:
		return nil, fmt.Errorf("unknown scenario %q: must be one of %s, %s", cfg.Scenario, ScenarioFigures, ScenarioNone)
	}

	switch cfg.TraceExporter {
	case "":
		cfg.TraceExporter = observability.ExporterNone
	case observability.ExporterNone, observability.ExporterStdout:
	default:
		return nil, fmt.Errorf("unknown trace exporter %q: must be one of none, stdout", cfg.TraceExporter)
	}

	return &cfg, nil
}
