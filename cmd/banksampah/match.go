package main

import (
	"banksampah/internal/db"
	"banksampah/internal/integrity"
	"banksampah/internal/store"
	"banksampah/pkg/types"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var matchCommand = &cli.Command{
	Name:  "match",
	Usage: "Assign sub-categories to unlinked catalog items by name matching",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "bank",
			Aliases:  []string{"b"},
			Usage:    "Waste bank ID to match items for",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "Waste kind: dry or wet",
			Value:   "dry",
		},
	},
	Action: func(c *cli.Context) error {
		kind, err := types.ParseWasteKind(c.String("kind"))
		if err != nil {
			return err
		}

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

		matcher := integrity.NewMatcher(
			store.NewSubCategoryRepository(pool),
			store.NewCatalogItemRepository(pool),
		)

		summary, err := matcher.MatchItems(ctx, c.String("bank"), kind)
		if err != nil {
			return err
		}

		for _, a := range summary.Assignments {
			fmt.Printf("  %q -> %q\n", a.ItemName, a.SubCategoryName)
		}

		logrus.WithFields(logrus.Fields{
			"matched":   summary.Matched,
			"unmatched": summary.Unmatched,
		}).Info("matching complete")

		return nil
	},
}
