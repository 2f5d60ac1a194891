package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/selfdiary/selfdiary/cmd/selfdiary/serve"
	"github.com/selfdiary/selfdiary/cmd/selfdiary/users"
	"github.com/selfdiary/selfdiary/internal/logutil"
)

func main() {
	var debug bool
	app := &cli.App{
		Name:  "selfdiary",
		Usage: "Keep a journal for yourself, on a server you own",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Enable debug logging",
				Destination: &debug,
			},
		},
		Before: func(ctx *cli.Context) error {
			ctx.Context = logutil.WithLogger(ctx.Context, logutil.NewRoot(debug))
			return nil
		},
		Commands: []*cli.Command{
			serve.Cmd(),
			users.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
