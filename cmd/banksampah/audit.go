package main

import (
	"banksampah/internal/db"
	"banksampah/internal/integrity"
	"banksampah/internal/store"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var auditCommand = &cli.Command{
	Name:  "audit",
	Usage: "Report dangling and mismatched catalog sub-category links",
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

		auditor := integrity.NewAuditor(store.NewCatalogItemRepository(pool))
		report, err := auditor.Detect(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Dangling references: %d\n", report.DanglingCount)
		for _, ref := range report.DanglingSample {
			fmt.Printf("  - id: %s, name: %s, sub_category_id: %s\n", ref.ID, ref.Name, ref.SubCategoryID)
		}

		fmt.Printf("Kind mismatches: %d\n", report.MismatchCount)
		for _, m := range report.MismatchSample {
			fmt.Printf("  - id: %s, name: %s, item kind: %s, sub-category %q kind: %s\n",
				m.ID, m.Name, m.ItemKind, m.SubCategoryName, m.SubCategoryKind)
		}

		fmt.Printf("Items with sub-category: %d\n", report.WithSubCategory)
		fmt.Printf("Items without sub-category: %d\n", report.WithoutSubCategory)
		fmt.Printf("Dry items: %d, wet items: %d\n", report.Dry, report.Wet)

		if report.Clean() {
			fmt.Println("All catalog integrity checks passed")
		} else {
			fmt.Println("Defects found; run `banksampah repair` to sever the bad links")
		}

		return nil
	},
}

var repairCommand = &cli.Command{
	Name:  "repair",
	Usage: "Null out dangling and mismatched catalog sub-category links",
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

		auditor := integrity.NewAuditor(store.NewCatalogItemRepository(pool))
		summary, err := auditor.Repair(ctx)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"dangling_fixed":   summary.DanglingFixed,
			"mismatches_fixed": summary.MismatchesFixed,
		}).Info("repair complete")

		return nil
	},
}
