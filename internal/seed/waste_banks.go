package seed

import (
	"banksampah/internal/store"
	"banksampah/internal/utils"
	"banksampah/pkg/types"
	"context"
	"fmt"
	"time"
)

// SeedWasteBanks inserts the starter waste banks. Banks are keyed by code, so
// re-running skips banks that already exist.
func SeedWasteBanks(ctx context.Context, repo *store.WasteBankRepository) error {
	banks := []types.WasteBank{
		{
			Name:     "Bank Sampah Melati",
			Code:     "BS-MLT",
			Address:  utils.StringPtr("Jl. Melati No. 12, Bandung"),
			Phone:    utils.StringPtr("+62-22-555-0101"),
			IsActive: true,
		},
		{
			Name:     "Bank Sampah Sejahtera",
			Code:     "BS-SJT",
			Address:  utils.StringPtr("Jl. Kenanga No. 4, Bandung"),
			Phone:    utils.StringPtr("+62-22-555-0102"),
			IsActive: true,
		},
	}

	created := 0
	for _, bank := range banks {
		existing, err := repo.WasteBankByCode(ctx, bank.Code)
		if err != nil {
			return fmt.Errorf("failed to look up waste bank %s: %w", bank.Code, err)
		}
		if existing != nil {
			continue
		}

		bank.ID = utils.NanoID()
		bank.CreatedAt = time.Now()
		if err := repo.CreateWasteBank(ctx, &bank); err != nil {
			return fmt.Errorf("failed to create waste bank %s: %w", bank.Code, err)
		}
		created++
	}

	fmt.Printf("Waste banks seeded: %d created\n", created)
	return nil
}
