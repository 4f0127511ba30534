package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/oksasatya/go-music-catalog/config"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	app := newApp(&runner{cfg: cfg, logger: logger})
	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.WithError(err).Fatal("seed failed")
	}
}

func newApp(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Administrative tasks for the music catalog",
		Commands: []*cli.Command{
			{
				Name:  "admin",
				Usage: "Create an admin user, or promote an existing one",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Admin username", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password for a new admin", Sources: cli.EnvVars("SEED_ADMIN_PASSWORD")},
				},
				Action: r.Admin,
			},
			{
				Name:  "promote",
				Usage: "Grant or revoke admin privilege",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
					&cli.BoolFlag{Name: "revoke", Usage: "Revoke instead of grant"},
				},
				Action: r.Promote,
			},
			{
				Name:  "remove-user",
				Usage: "Delete a user; songs it uploaded are kept",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
				},
				Action: r.RemoveUser,
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the Elasticsearch songs index from the database",
				Action: r.Reindex,
			},
		},
	}
}
