package migrate

import (
	"context"
	"errors"
	"fmt"

	"banksampah/internal/slug"
	"banksampah/pkg/types"
)

// KindLookup resolves a legacy category reference to a waste kind. The
// backfill receives it as an injected dependency so tests can fake the legacy
// table.
type KindLookup interface {
	KindForLegacyCategory(ctx context.Context, legacyCategoryID string) (types.WasteKind, error)
}

// BackfillStore is the slice of the sub-category store the backfill needs:
// listing rows in their pre-migration shape, persisting derived values, and
// probing slug uniqueness for the generator.
type BackfillStore interface {
	ListForBackfill(ctx context.Context) ([]types.SubCategoryBackfillRow, error)
	ApplyBackfill(ctx context.Context, id string, slugValue string, kind types.WasteKind, active bool) error
	slug.ExistenceChecker
}

type BackfillResult struct {
	Updated int
	Skipped int
}

// Backfill populates slug, waste_kind and is_active for every sub-category
// row that predates those columns. Rows that already carry slug and
// waste_kind are skipped unchanged, so re-running against a backfilled table
// is a no-op.
type Backfill struct {
	store  BackfillStore
	lookup KindLookup
	slugs  *slug.Generator
}

func NewBackfill(store BackfillStore, lookup KindLookup) *Backfill {
	return &Backfill{
		store:  store,
		lookup: lookup,
		slugs:  slug.NewGenerator(store),
	}
}

// Run walks all rows in one pass. The caller supplies the transaction (the
// store is expected to be bound to one); any lookup failure aborts with a
// LookupError so the transaction rolls back whole.
func (b *Backfill) Run(ctx context.Context) (BackfillResult, error) {
	var result BackfillResult

	rows, err := b.store.ListForBackfill(ctx)
	if err != nil {
		return result, fmt.Errorf("list sub categories: %w", err)
	}

	for _, row := range rows {
		if row.Slug != nil && row.WasteKind != nil {
			result.Skipped++
			continue
		}

		if row.LegacyCategoryID == nil {
			return result, &LookupError{
				SubCategoryID: row.ID,
				Err:           errors.New("row has no legacy category reference"),
			}
		}

		kind, err := b.lookup.KindForLegacyCategory(ctx, *row.LegacyCategoryID)
		if err != nil {
			return result, &LookupError{
				SubCategoryID:    row.ID,
				LegacyCategoryID: *row.LegacyCategoryID,
				Err:              err,
			}
		}

		scope := slug.Scope{WasteBankID: row.WasteBankID, WasteKind: kind}
		slugValue, err := b.slugs.Generate(ctx, row.Name, scope, row.ID)
		if err != nil {
			return result, fmt.Errorf("generate slug for sub category %s: %w", row.ID, err)
		}

		if err := b.store.ApplyBackfill(ctx, row.ID, slugValue, kind, row.LegacyActive); err != nil {
			return result, err
		}

		result.Updated++
	}

	return result, nil
}
