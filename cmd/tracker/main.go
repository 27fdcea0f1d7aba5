package main

import (
	"context"
	"fmt"
	"os"

	"cs2-tracker/internal/cache"
	"cs2-tracker/internal/cli"
	fxmodules "cs2-tracker/internal/fx"
	"cs2-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	root := cli.NewRootCommand(load)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load builds the core without starting the server. Logs go to stderr so
// they never mix with table output.
func load() (*cli.Deps, error) {
	var (
		tracker  *service.TrackerService
		rankings *cache.Rankings
	)
	app := fx.New(
		fxmodules.CoreModule,
		fx.Decorate(func(logger zerolog.Logger) zerolog.Logger {
			return logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}),
		fx.NopLogger,
		fx.Populate(&tracker, &rankings),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return &cli.Deps{Tracker: tracker, Rankings: rankings}, nil
}
