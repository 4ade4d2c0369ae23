package seed

import (
	"banksampah/internal/slug"
	"banksampah/internal/utils"
	"banksampah/pkg/types"
	"context"
	"fmt"
	"time"
)

// BankSource lists the waste banks to seed into.
type BankSource interface {
	AllWasteBanks(ctx context.Context) ([]*types.WasteBank, error)
}

// SubCategoryStore is the sub-category surface the seeder uses: the slug
// existence probe that drives idempotence, plus row creation.
type SubCategoryStore interface {
	slug.ExistenceChecker
	CreateSubCategory(ctx context.Context, subCategory *types.SubCategory) error
}

// This file is the source of truth for the canonical sub-categories every
// waste bank starts with: seven dry buckets and three wet ones. Slugs are
// fixed here rather than derived at seed time so the (bank, kind, slug)
// idempotence check is stable across runs.
var canonicalSubCategories = []types.SubCategory{
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Kertas",
		Slug:        "kertas",
		Description: utils.StringPtr("Kertas bekas, koran, majalah, buku"),
		Icon:        utils.StringPtr("paper"),
		Color:       utils.StringPtr("#8BC34A"),
		SortOrder:   1,
	},
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Botol Plastik",
		Slug:        "botol-plastik",
		Description: utils.StringPtr("Botol plastik PET, HDPE"),
		Icon:        utils.StringPtr("bottle"),
		Color:       utils.StringPtr("#2196F3"),
		SortOrder:   2,
	},
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Plastik",
		Slug:        "plastik",
		Description: utils.StringPtr("Plastik kemasan, kantong plastik"),
		Icon:        utils.StringPtr("plastic-bag"),
		Color:       utils.StringPtr("#03A9F4"),
		SortOrder:   3,
	},
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Logam",
		Slug:        "logam",
		Description: utils.StringPtr("Kaleng, aluminium, besi"),
		Icon:        utils.StringPtr("metal"),
		Color:       utils.StringPtr("#9E9E9E"),
		SortOrder:   4,
	},
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Kaca",
		Slug:        "kaca",
		Description: utils.StringPtr("Botol kaca, pecahan kaca"),
		Icon:        utils.StringPtr("glass"),
		Color:       utils.StringPtr("#00BCD4"),
		SortOrder:   5,
	},
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Kardus",
		Slug:        "kardus",
		Description: utils.StringPtr("Kardus bekas, karton"),
		Icon:        utils.StringPtr("cardboard"),
		Color:       utils.StringPtr("#795548"),
		SortOrder:   6,
	},
	{
		WasteKind:   types.WasteKindDry,
		Name:        "Elektronik",
		Slug:        "elektronik",
		Description: utils.StringPtr("Barang elektronik bekas"),
		Icon:        utils.StringPtr("electronics"),
		Color:       utils.StringPtr("#607D8B"),
		SortOrder:   7,
	},
	{
		WasteKind:   types.WasteKindWet,
		Name:        "Organik",
		Slug:        "organik",
		Description: utils.StringPtr("Sampah organik umum"),
		Icon:        utils.StringPtr("organic"),
		Color:       utils.StringPtr("#4CAF50"),
		SortOrder:   1,
	},
	{
		WasteKind:   types.WasteKindWet,
		Name:        "Sisa Makanan",
		Slug:        "sisa-makanan",
		Description: utils.StringPtr("Sisa makanan, kulit buah"),
		Icon:        utils.StringPtr("food-waste"),
		Color:       utils.StringPtr("#8BC34A"),
		SortOrder:   2,
	},
	{
		WasteKind:   types.WasteKindWet,
		Name:        "Daun",
		Slug:        "daun",
		Description: utils.StringPtr("Daun kering, ranting"),
		Icon:        utils.StringPtr("leaf"),
		Color:       utils.StringPtr("#689F38"),
		SortOrder:   3,
	},
}

// SeedSubCategories creates the canonical sub-categories for every waste
// bank. Idempotent on the (bank, kind, slug) unique key: existing rows are
// skipped, never rewritten.
func SeedSubCategories(ctx context.Context, banks BankSource, subCategories SubCategoryStore) error {
	allBanks, err := banks.AllWasteBanks(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch waste banks: %w", err)
	}

	if len(allBanks) == 0 {
		fmt.Println("No waste banks found, skipping sub category seeding")
		return nil
	}

	createdCount := 0
	skippedCount := 0

	for _, bank := range allBanks {
		fmt.Printf("Processing waste bank: %s\n", bank.Name)

		for _, data := range canonicalSubCategories {
			scope := slug.Scope{WasteBankID: bank.ID, WasteKind: data.WasteKind}
			exists, err := subCategories.SlugExists(ctx, scope, data.Slug, "")
			if err != nil {
				return fmt.Errorf("failed to check sub category %s: %w", data.Slug, err)
			}
			if exists {
				skippedCount++
				continue
			}

			subCategory := data
			subCategory.ID = utils.NanoID()
			subCategory.WasteBankID = bank.ID
			subCategory.IsActive = true
			subCategory.CreatedAt = time.Now()

			if err := subCategories.CreateSubCategory(ctx, &subCategory); err != nil {
				return fmt.Errorf("failed to create sub category %s: %w", data.Slug, err)
			}
			createdCount++
		}
	}

	fmt.Printf("\nSub categories seeded: %d created, %d skipped (already exist)\n", createdCount, skippedCount)
	return nil
}
