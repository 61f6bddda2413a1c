// Package cliapp implements the lazyq command line application.
package cliapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/lazyq/adapter/boltdb"
	"go.llib.dev/lazyq/adapter/postgresql"
)

// ErrUsage marks errors caused by the invocation rather than by the data.
// Commands failing with it exit with cli.ExitCodeBadRequest.
const ErrUsage errorkit.Error = "ErrUsage"

// App holds the dependencies shared by the commands.
type App struct {
	Config Config
	Logger *logging.Logger
}

// New creates an App which logs to logOut.
// A command line app keeps its STDOUT for results, so logOut is usually STDERR.
func New(cfg Config, logOut io.Writer) *App {
	return &App{
		Config: cfg,
		Logger: &logging.Logger{Out: logOut, Level: cfg.level()},
	}
}

func (app *App) Mux() *cli.Mux {
	var m cli.Mux
	m.Handle("query", QueryCommand{app: app})
	m.Handle("seed", SeedCommand{app: app})
	return &m
}

// run wraps a command execution with the run correlation id and the start/finish log entries.
func (app *App) run(ctx context.Context, command string, w cli.Response, fn func(ctx context.Context) error) {
	ctx = logging.ContextWith(ctx,
		logging.Field("run_id", uuid.NewV4().String()),
		logging.Field("command", command))

	start := time.Now()
	app.Logger.Debug(ctx, "command started")
	err := fn(ctx)
	if err == nil {
		app.Logger.Info(ctx, "command finished", logging.Field("duration", time.Since(start).String()))
		return
	}
	app.Logger.Error(ctx, "command failed", logging.ErrField(err))
	code := cli.ExitCodeError
	if errors.Is(err, ErrUsage) {
		code = cli.ExitCodeBadRequest
	}
	w.ExitCode(code)
	var out io.Writer = w
	if ew, ok := w.(cli.ErrorWriter); ok {
		out = ew.Stderr()
	}
	fmt.Fprintln(out, err.Error())
}

func (app *App) openBolt(ctx context.Context) (*boltdb.Store, error) {
	if app.Config.BoltPath == "" {
		return nil, ErrUsage.F("LAZYQ_BOLT_PATH is not set")
	}
	bucket := app.Config.BoltBucket
	if bucket == "" {
		bucket = "lines"
	}
	s, err := boltdb.Open(app.Config.BoltPath, bucket)
	if err != nil {
		return nil, err
	}
	s.Logger = app.Logger
	app.Logger.Debug(ctx, "bolt database opened", logging.Field("path", app.Config.BoltPath))
	return s, nil
}

func (app *App) connectPostgres(ctx context.Context) (*postgresql.Connection, error) {
	if app.Config.DatabaseURL == "" {
		return nil, ErrUsage.F("LAZYQ_DATABASE_URL is not set")
	}
	c, err := postgresql.Connect(ctx, app.Config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	c.Logger = app.Logger
	return c, nil
}
