package main

import (
	"banksampah/internal/db"
	"banksampah/internal/seed"
	"banksampah/internal/store"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with waste banks, sub-categories and catalog items",
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

		logrus.Info("Connected to database")

		bankRepo := store.NewWasteBankRepository(pool)
		subCategoryRepo := store.NewSubCategoryRepository(pool)
		catalogRepo := store.NewCatalogItemRepository(pool)

		logrus.Info("Seeding waste banks...")
		if err := seed.SeedWasteBanks(ctx, bankRepo); err != nil {
			return fmt.Errorf("failed to seed waste banks: %w", err)
		}

		logrus.Info("Seeding sub categories...")
		if err := seed.SeedSubCategories(ctx, bankRepo, subCategoryRepo); err != nil {
			return fmt.Errorf("failed to seed sub categories: %w", err)
		}

		logrus.Info("Seeding catalog items...")
		if err := seed.SeedCatalogItems(ctx, bankRepo, subCategoryRepo, catalogRepo); err != nil {
			return fmt.Errorf("failed to seed catalog items: %w", err)
		}

		logrus.Info("Seeding complete")
		return nil
	},
}
