package seed

import (
	"context"
	"fmt"
	"testing"

	"banksampah/internal/slug"
	"banksampah/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeedStore struct {
	banks   []*types.WasteBank
	rows    map[string]*types.SubCategory
	creates int
}

func newFakeSeedStore(banks ...*types.WasteBank) *fakeSeedStore {
	return &fakeSeedStore{
		banks: banks,
		rows:  map[string]*types.SubCategory{},
	}
}

func seedKey(bankID string, kind types.WasteKind, slugValue string) string {
	return fmt.Sprintf("%s|%d|%s", bankID, kind, slugValue)
}

func (f *fakeSeedStore) AllWasteBanks(ctx context.Context) ([]*types.WasteBank, error) {
	return f.banks, nil
}

func (f *fakeSeedStore) SlugExists(ctx context.Context, scope slug.Scope, slugValue string, excludeID string) (bool, error) {
	row, ok := f.rows[seedKey(scope.WasteBankID, scope.WasteKind, slugValue)]
	if !ok {
		return false, nil
	}
	return row.ID != excludeID, nil
}

func (f *fakeSeedStore) CreateSubCategory(ctx context.Context, subCategory *types.SubCategory) error {
	key := seedKey(subCategory.WasteBankID, subCategory.WasteKind, subCategory.Slug)
	if _, ok := f.rows[key]; ok {
		return fmt.Errorf("duplicate sub category %s", key)
	}

	copied := *subCategory
	f.rows[key] = &copied
	f.creates++
	return nil
}

func TestSeedSubCategoriesCreatesCanonicalSetPerBank(t *testing.T) {
	store := newFakeSeedStore(
		&types.WasteBank{ID: "bank-1", Name: "Bank Sampah Melati"},
		&types.WasteBank{ID: "bank-2", Name: "Bank Sampah Sejahtera"},
	)

	err := SeedSubCategories(context.Background(), store, store)
	require.NoError(t, err)

	assert.Equal(t, 2*len(canonicalSubCategories), store.creates)

	row, ok := store.rows[seedKey("bank-2", types.WasteKindWet, "organik")]
	require.True(t, ok)
	assert.Equal(t, "Organik", row.Name)
	assert.Equal(t, "bank-2", row.WasteBankID)
	assert.True(t, row.IsActive)
	assert.NotEmpty(t, row.ID)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestSeedSubCategoriesIsIdempotent(t *testing.T) {
	store := newFakeSeedStore(&types.WasteBank{ID: "bank-1", Name: "Bank Sampah Melati"})

	require.NoError(t, SeedSubCategories(context.Background(), store, store))
	firstRun := store.creates
	require.Equal(t, len(canonicalSubCategories), firstRun)

	firstIDs := map[string]string{}
	for key, row := range store.rows {
		firstIDs[key] = row.ID
	}

	require.NoError(t, SeedSubCategories(context.Background(), store, store))

	assert.Equal(t, firstRun, store.creates, "second run must create nothing")
	for key, row := range store.rows {
		assert.Equal(t, firstIDs[key], row.ID, "existing rows must not be rewritten")
	}
}

func TestSeedSubCategoriesSkipsWhenNoBanks(t *testing.T) {
	store := newFakeSeedStore()

	err := SeedSubCategories(context.Background(), store, store)
	require.NoError(t, err)
	assert.Zero(t, store.creates)
}
