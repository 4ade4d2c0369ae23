package main

import (
	"banksampah/internal/db"
	"banksampah/internal/migrate"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Run the sub-category schema migration phases in order",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "to",
			Aliases: []string{"t"},
			Usage:   "Last phase to apply (1-4)",
			Value:   4,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		pipeline := migrate.NewPipeline(pool)
		if err := pipeline.RunTo(ctx, c.Int("to")); err != nil {
			return err
		}

		logrus.WithField("to", c.Int("to")).Info("migration complete")
		return nil
	},
}

var rollbackCommand = &cli.Command{
	Name:  "rollback",
	Usage: "Reverse a single migration phase",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "phase",
			Aliases:  []string{"p"},
			Usage:    "Phase to roll back (1-4)",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		pipeline := migrate.NewPipeline(pool)
		if err := pipeline.Rollback(ctx, c.Int("phase")); err != nil {
			return err
		}

		logrus.WithField("phase", c.Int("phase")).Info("rollback complete")
		return nil
	},
}
