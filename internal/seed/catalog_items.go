package seed

import (
	"banksampah/internal/store"
	"banksampah/internal/utils"
	"banksampah/pkg/types"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type catalogSeedItem struct {
	subCategorySlug string
	kind            types.WasteKind
	name            string
	pricePerKg      int64
	description     string
}

// Starter catalog for the first bank. Prices are rupiah per kilogram.
var catalogSeedItems = []catalogSeedItem{
	{"botol-plastik", types.WasteKindDry, "Botol Plastik PET", 3000, "Botol plastik bekas minuman kemasan"},
	{"plastik", types.WasteKindDry, "Plastik HDPE", 2500, "Plastik keras seperti jerigen dan ember"},
	{"plastik", types.WasteKindDry, "Plastik PP", 2000, "Plastik polypropylene seperti gelas plastik"},
	{"kertas", types.WasteKindDry, "Kertas HVS", 1500, "Kertas putih bekas print atau fotokopi"},
	{"kardus", types.WasteKindDry, "Kardus", 1200, "Kardus bekas kemasan"},
	{"kertas", types.WasteKindDry, "Koran", 1000, "Koran bekas"},
	{"kertas", types.WasteKindDry, "Majalah", 800, "Majalah dan buku bekas"},
	{"logam", types.WasteKindDry, "Kaleng Aluminium", 5000, "Kaleng minuman aluminium"},
	{"logam", types.WasteKindDry, "Besi", 3500, "Besi bekas"},
	{"logam", types.WasteKindDry, "Tembaga", 45000, "Kabel tembaga bekas"},
	{"kaca", types.WasteKindDry, "Botol Kaca Bening", 1000, "Botol kaca bening bekas"},
	{"kaca", types.WasteKindDry, "Botol Kaca Warna", 800, "Botol kaca berwarna bekas"},
	{"elektronik", types.WasteKindDry, "Kabel Listrik", 8000, "Kabel listrik bekas"},
	{"elektronik", types.WasteKindDry, "Komponen Elektronik", 15000, "PCB dan komponen elektronik bekas"},
	{"organik", types.WasteKindWet, "Sisa Sayuran", 500, "Sisa sayuran dari dapur"},
	{"sisa-makanan", types.WasteKindWet, "Sisa Makanan", 400, "Sisa makanan rumah tangga"},
	{"daun", types.WasteKindWet, "Daun Kering", 300, "Daun kering dan ranting"},
}

// SeedCatalogItems fills the starter catalog for the first waste bank,
// linking each item to its canonical sub-category. Items are keyed by name
// within the bank, so re-running only creates what is missing.
func SeedCatalogItems(ctx context.Context, banks *store.WasteBankRepository, subCategories *store.SubCategoryRepository, items *store.CatalogItemRepository) error {
	allBanks, err := banks.AllWasteBanks(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch waste banks: %w", err)
	}

	if len(allBanks) == 0 {
		fmt.Println("No waste banks found, skipping catalog seeding")
		return nil
	}

	bank := allBanks[0]
	createdCount := 0
	skippedCount := 0

	for _, data := range catalogSeedItems {
		exists, err := items.ItemExistsByName(ctx, bank.ID, data.name)
		if err != nil {
			return fmt.Errorf("failed to check catalog item %s: %w", data.name, err)
		}
		if exists {
			skippedCount++
			continue
		}

		subCategory, err := subCategories.SubCategoryBySlug(ctx, bank.ID, data.kind, data.subCategorySlug)
		if err != nil {
			return fmt.Errorf("failed to resolve sub category %s: %w", data.subCategorySlug, err)
		}

		item := types.CatalogItem{
			ID:          utils.NanoID(),
			WasteBankID: bank.ID,
			WasteKind:   data.kind,
			Name:        data.name,
			PricePerKg:  decimal.NewFromInt(data.pricePerKg),
			Description: utils.StringPtr(data.description),
			IsActive:    true,
			CreatedAt:   time.Now(),
		}
		if subCategory != nil {
			item.SubCategoryID = &subCategory.ID
		}

		if err := items.CreateCatalogItem(ctx, &item); err != nil {
			return fmt.Errorf("failed to create catalog item %s: %w", data.name, err)
		}
		createdCount++
	}

	fmt.Printf("Catalog items seeded for %s: %d created, %d skipped (already exist)\n", bank.Name, createdCount, skippedCount)
	return nil
}
