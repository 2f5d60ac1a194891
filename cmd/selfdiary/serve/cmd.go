package serve

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/selfdiary/selfdiary/diary"
	"github.com/selfdiary/selfdiary/diary/api"
	"github.com/selfdiary/selfdiary/diary/session"
	"github.com/selfdiary/selfdiary/internal/cmdflags"
	"github.com/selfdiary/selfdiary/internal/httpserver"
)

func Cmd() *cli.Command {
	bindAddr := "127.0.0.1:8080"
	dbPath := "./self_diary.db"
	frontendOrigin := "http://localhost:3000"
	sessionTTL := time.Hour * 12
	var insecureCookie bool
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the diary HTTP service",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.Database(&dbPath),
			cmdflags.FrontendOrigin(&frontendOrigin),
			&cli.DurationFlag{
				Name:        "session-ttl",
				Usage:       "How long an idle session stays valid",
				Value:       sessionTTL,
				Destination: &sessionTTL,
			},
			&cli.BoolFlag{
				Name:        "insecure-cookie",
				Usage:       "Allow the session cookie over plain HTTP (local development only)",
				Destination: &insecureCookie,
			},
		},
		Action: func(ctx *cli.Context) error {
			store, err := diary.Open(ctx.Context, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			sessions, err := session.NewRegistry(sessionTTL)
			if err != nil {
				return err
			}
			handler := api.AsHandler(ctx.Context, store, sessions, insecureCookie)
			return httpserver.Serve(ctx.Context, bindAddr, api.WithCORS(handler, frontendOrigin))
		},
	}
}
