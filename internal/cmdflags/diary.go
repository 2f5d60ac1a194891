package cmdflags

import (
	"github.com/urfave/cli/v2"
)

func Database(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "db",
		Aliases:     []string{"d", "database"},
		Usage:       "Path to the diary database file",
		EnvVars:     []string{"DATABASE_PATH", "SELFDIARY_DB"},
		Destination: out,
		Value:       *out,
	}
}

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Aliases:     []string{"b"},
		Usage:       "Address to bind the HTTP server to",
		EnvVars:     []string{"BACKEND_SERVER_URL"},
		Destination: out,
		Value:       *out,
	}
}

func FrontendOrigin(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "frontend-origin",
		Usage:       "Origin allowed to call the api with credentials",
		EnvVars:     []string{"FRONTEND_SERVER_URL"},
		Destination: out,
		Value:       *out,
	}
}
