package migrate

import (
	"context"
	"fmt"
	"testing"

	"banksampah/internal/slug"
	"banksampah/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appliedRow struct {
	slug   string
	kind   types.WasteKind
	active bool
}

type fakeBackfillStore struct {
	rows    []types.SubCategoryBackfillRow
	applied map[string]appliedRow
}

func newFakeBackfillStore(rows ...types.SubCategoryBackfillRow) *fakeBackfillStore {
	return &fakeBackfillStore{rows: rows, applied: make(map[string]appliedRow)}
}

func (f *fakeBackfillStore) ListForBackfill(context.Context) ([]types.SubCategoryBackfillRow, error) {
	return f.rows, nil
}

func (f *fakeBackfillStore) ApplyBackfill(_ context.Context, id string, slugValue string, kind types.WasteKind, active bool) error {
	f.applied[id] = appliedRow{slug: slugValue, kind: kind, active: active}
	return nil
}

func (f *fakeBackfillStore) SlugExists(_ context.Context, scope slug.Scope, slugValue string, excludeID string) (bool, error) {
	for id, a := range f.applied {
		if id == excludeID {
			continue
		}
		if a.kind == scope.WasteKind && a.slug == slugValue {
			return true, nil
		}
	}
	for _, row := range f.rows {
		if row.ID == excludeID || row.Slug == nil || row.WasteKind == nil {
			continue
		}
		if row.WasteBankID == scope.WasteBankID && *row.WasteKind == scope.WasteKind && *row.Slug == slugValue {
			return true, nil
		}
	}
	return false, nil
}

type fakeKindLookup map[string]types.WasteKind

func (f fakeKindLookup) KindForLegacyCategory(_ context.Context, id string) (types.WasteKind, error) {
	kind, ok := f[id]
	if !ok {
		return 0, fmt.Errorf("legacy category %s not found", id)
	}
	return kind, nil
}

func legacyRow(id, bankID, name, legacyID string, active bool) types.SubCategoryBackfillRow {
	return types.SubCategoryBackfillRow{
		ID:               id,
		WasteBankID:      bankID,
		Name:             name,
		LegacyCategoryID: &legacyID,
		LegacyActive:     active,
	}
}

func TestBackfillPopulatesDerivedColumns(t *testing.T) {
	store := newFakeBackfillStore(
		legacyRow("sub-1", "bank-1", "Botol Plastik", "legacy-dry", true),
		legacyRow("sub-2", "bank-1", "Organik", "legacy-wet", false),
	)
	lookup := fakeKindLookup{
		"legacy-dry": types.WasteKindDry,
		"legacy-wet": types.WasteKindWet,
	}

	result, err := NewBackfill(store, lookup).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Zero(t, result.Skipped)

	require.Contains(t, store.applied, "sub-1")
	assert.Equal(t, appliedRow{slug: "botol-plastik", kind: types.WasteKindDry, active: true}, store.applied["sub-1"])
	assert.Equal(t, appliedRow{slug: "organik", kind: types.WasteKindWet, active: false}, store.applied["sub-2"])
}

func TestBackfillSuffixesCollidingSlugs(t *testing.T) {
	store := newFakeBackfillStore(
		legacyRow("sub-1", "bank-1", "Plastik", "legacy-dry", true),
		legacyRow("sub-2", "bank-1", "Plastik!", "legacy-dry", true),
	)
	lookup := fakeKindLookup{"legacy-dry": types.WasteKindDry}

	_, err := NewBackfill(store, lookup).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "plastik", store.applied["sub-1"].slug)
	assert.Equal(t, "plastik-1", store.applied["sub-2"].slug)
}

func TestBackfillSkipsAlreadyBackfilledRows(t *testing.T) {
	done := types.SubCategoryBackfillRow{
		ID:          "sub-1",
		WasteBankID: "bank-1",
		Name:        "Kertas",
	}
	existing := "kertas"
	kind := types.WasteKindDry
	done.Slug = &existing
	done.WasteKind = &kind

	store := newFakeBackfillStore(done)
	result, err := NewBackfill(store, fakeKindLookup{}).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, store.applied, "already-correct rows must not be rewritten")
}

func TestBackfillAbortsOnUnresolvableLookup(t *testing.T) {
	store := newFakeBackfillStore(
		legacyRow("sub-1", "bank-1", "Kertas", "legacy-missing", true),
		legacyRow("sub-2", "bank-1", "Logam", "legacy-dry", true),
	)
	lookup := fakeKindLookup{"legacy-dry": types.WasteKindDry}

	_, err := NewBackfill(store, lookup).Run(context.Background())
	require.Error(t, err)

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "sub-1", lookupErr.SubCategoryID)
	assert.Equal(t, "legacy-missing", lookupErr.LegacyCategoryID)

	// Nothing after the failing row was written; the surrounding transaction
	// rolls the rest back.
	assert.Empty(t, store.applied)
}

func TestBackfillAbortsWhenLegacyReferenceMissing(t *testing.T) {
	row := types.SubCategoryBackfillRow{ID: "sub-1", WasteBankID: "bank-1", Name: "Kertas"}
	store := newFakeBackfillStore(row)

	_, err := NewBackfill(store, fakeKindLookup{}).Run(context.Background())

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "sub-1", lookupErr.SubCategoryID)
}
