package cliapp

import (
	"context"
	"fmt"

	"github.com/Pallinder/go-randomdata"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
)

// SeedCommand fills the bolt bucket with random names, to have something to query.
type SeedCommand struct {
	N int `flag:"n" default:"10" desc:"number of names to add"`

	app *App
}

func (cmd SeedCommand) Summary() string { return "add random names to the bolt bucket" }

func (cmd SeedCommand) ServeCLI(w cli.Response, r *cli.Request) {
	cmd.app.run(r.Context(), "seed", w, func(ctx context.Context) (rErr error) {
		if cmd.N < 0 {
			return ErrUsage.F("-n must not be negative")
		}
		store, err := cmd.app.openBolt(ctx)
		if err != nil {
			return err
		}
		defer errorkit.Finish(&rErr, store.Close)

		names := make([]string, 0, cmd.N)
		for range cmd.N {
			names = append(names, randomdata.SillyName())
		}
		if err := store.Append(ctx, names...); err != nil {
			return err
		}
		cmd.app.Logger.Info(ctx, "bucket seeded", logging.Field("count", cmd.N), logging.Field("bucket", store.Bucket))
		_, err = fmt.Fprintf(w, "%d names added\n", cmd.N)
		return err
	})
}
