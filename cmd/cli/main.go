package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/aspectgo/internal/app"
	"github.com/specialistvlad/aspectgo/internal/cli"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/hcl"
	"github.com/specialistvlad/aspectgo/internal/yamlplan"
)

// main is the entrypoint for the aspectgo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A module registering the same advice twice panics; report it as a
	// startup error instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := config.NewMulti(hcl.NewLoader(), yamlplan.NewLoader())
	aspectApp, err := app.NewApp(outW, appConfig, loader)
	if err != nil {
		return err
	}

	return aspectApp.Run(ctx)
}
