package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/aspectgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return ParseWithEnv(args, output, nil)
}

// ParseWithEnv is Parse with an explicit environment. A nil environ reads
// the process environment.
func ParseWithEnv(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults, err := loadEnv(environ)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("aspectgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
AspectGo - Weaves aspect plans into a program's call-sites at runtime.

Usage:
  aspectgo [options] [PLAN_PATH]

Arguments:
  PLAN_PATH
    Path to a single .hcl/.yaml plan file or a directory containing them.

Every option can also be set with an ASPECTGO_* environment variable,
e.g. ASPECTGO_LOG_LEVEL=debug.

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the plan file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plan file or directory (shorthand).")
	diagPortFlag := flagSet.Int("diag-port", defaults.DiagPort, "Port for the diagnostics server (/health, /metrics, /coverage). 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	debugFlag := flagSet.Bool("debug", defaults.Debug, "Also enable the aspects of the debug group.")
	traceFlag := flagSet.String("trace-exporter", defaults.TraceExporter, "Span exporter for the span advice. Options: 'none' or 'stdout'.")
	holdFlag := flagSet.Bool("hold", defaults.Hold, "Keep the aspects woven after the scenario until interrupted.")
	scenarioFlag := flagSet.String("scenario", defaults.Scenario, "Scenario to run. Options: 'figures' or 'none'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Precedence: -plan, then -p, then the positional argument, then ASPECTGO_PLAN.
	path := defaults.Plan
	if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if *pFlag != "" {
		path = *pFlag
	}
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "plan" {
			path = *planFlag
		}
	})
	slog.Debug("Plan path determined.", "path", path)

	if path == "" {
		slog.Debug("No plan path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PlanPath:      path,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		Debug:         *debugFlag,
		DiagPort:      *diagPortFlag,
		TraceExporter: strings.ToLower(*traceFlag),
		Hold:          *holdFlag,
		Scenario:      strings.ToLower(*scenarioFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
