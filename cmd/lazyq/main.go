package main

import (
	"context"
	"fmt"
	"os"

	"go.llib.dev/frameless/pkg/cli"

	"go.llib.dev/lazyq/internal/cliapp"
)

func main() {
	cfg, err := cliapp.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load the configuration:", err.Error())
		os.Exit(cli.ExitCodeBadRequest)
	}
	app := cliapp.New(cfg, os.Stderr)
	cli.Main(context.Background(), app.Mux())
}
