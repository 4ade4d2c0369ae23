package types

import "time"

// SubCategory is a waste classification bucket scoped to one waste bank and
// one waste kind. (waste_bank_id, waste_kind, slug) is unique.
type SubCategory struct {
	ID          string    `db:"id"`
	WasteBankID string    `db:"waste_bank_id"`
	WasteKind   WasteKind `db:"waste_kind"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	LegacyCode  *string   `db:"legacy_code"`
	Description *string   `db:"description"`
	Icon        *string   `db:"icon"`
	Color       *string   `db:"color"`
	SortOrder   int       `db:"sort_order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// SubCategoryBackfillRow is the pre-migration shape of a sub-category row,
// including the legacy columns the backfill derives the new values from.
type SubCategoryBackfillRow struct {
	ID               string     `db:"id"`
	WasteBankID      string     `db:"waste_bank_id"`
	Name             string     `db:"name"`
	LegacyCategoryID *string    `db:"legacy_category_id"`
	LegacyActive     bool       `db:"legacy_active"`
	Slug             *string    `db:"slug"`
	WasteKind        *WasteKind `db:"waste_kind"`
}

// LegacyCategory is the historical category lookup table. It is read-only to
// this codebase and consumed only while backfilling waste kinds.
type LegacyCategory struct {
	ID   string `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}
