package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/seed"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "recipectl",
		Usage:     "Operate the recipe tracker database",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			migrateCmd(out),
			seedCmd(out),
			tokenCmd(out),
		},
	}
}

func migrateCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := database.RunMigrations(db.WithContext(ctx)); err != nil {
				return err
			}
			fmt.Fprintln(out, "schema is up to date")
			return nil
		},
	}
}

func seedCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load sample users, recipe types and recipes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Delete all existing rows first",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "YAML fixture file to load instead of the built-in sample data",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fixtures, err := loadFixtures(cmd.String("file"))
			if err != nil {
				return err
			}

			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := database.RunMigrations(db.WithContext(ctx)); err != nil {
				return err
			}
			sum, err := seed.Run(ctx, db, fixtures, seed.Options{Reset: cmd.Bool("reset")})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "seeded %d users, %d recipe types, %d recipes\n", sum.Users, sum.RecipeTypes, sum.Recipes)
			return nil
		},
	}
}

func tokenCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Sign a development identity token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Usage:    "User id placed in the sub claim",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "username",
				Usage: "Username claim (defaults to the user id)",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "Token lifetime",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Environment.IsProduction() {
				return fmt.Errorf("refusing to sign tokens in %s", cfg.Environment)
			}

			username := cmd.String("username")
			if username == "" {
				username = cmd.String("user")
			}
			token, err := service.NewIdentityService(cfg.IdentitySecret, cfg.IdentityIssuer).
				GenerateToken(cmd.String("user"), username, cmd.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, token)
			return nil
		},
	}
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return seed.Parse(data)
}

func openDB() (*gorm.DB, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
