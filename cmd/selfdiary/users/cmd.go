package users

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/selfdiary/selfdiary/diary"
	"github.com/selfdiary/selfdiary/diary/auth"
	"github.com/selfdiary/selfdiary/internal/cmdflags"
)

func Cmd() *cli.Command {
	var store *diary.Store
	dbPath := "./self_diary.db"
	return &cli.Command{
		Name:  "users",
		Usage: "Manage diary accounts without going through the HTTP api",
		Flags: []cli.Flag{
			cmdflags.Database(&dbPath),
		},
		Before: func(ctx *cli.Context) error {
			var err error
			store, err = diary.Open(ctx.Context, dbPath)
			return err
		},
		After: func(ctx *cli.Context) error {
			if store != nil {
				return store.Close()
			}
			return nil
		},
		Subcommands: []*cli.Command{
			registerCmd(&store),
		},
	}
}

func registerCmd(store **diary.Store) *cli.Command {
	var username string
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new user (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the user to register",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			return auth.Register(ctx.Context, *store, username, password)
		},
	}
}
