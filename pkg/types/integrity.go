package types

// DanglingRef is a catalog item whose sub_category_id points at a
// sub-category row that does not exist.
type DanglingRef struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	SubCategoryID string `db:"sub_category_id"`
}

// KindMismatch is a catalog item linked to an existing sub-category whose
// waste kind disagrees with the item's.
type KindMismatch struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	ItemKind        WasteKind `db:"item_kind"`
	SubCategoryKind WasteKind `db:"sub_category_kind"`
	SubCategoryName string    `db:"sub_category_name"`
}

type LinkCounts struct {
	WithSubCategory    int64 `db:"with_sub_category"`
	WithoutSubCategory int64 `db:"without_sub_category"`
	Dry                int64 `db:"dry"`
	Wet                int64 `db:"wet"`
}

type IntegrityReport struct {
	DanglingCount  int
	DanglingSample []DanglingRef
	MismatchCount  int
	MismatchSample []KindMismatch
	LinkCounts
}

func (r *IntegrityReport) Clean() bool {
	return r.DanglingCount == 0 && r.MismatchCount == 0
}

type RepairSummary struct {
	DanglingFixed   int64
	MismatchesFixed int64
}

// CanonicalName pairs a sub-category id with its display name for matching.
type CanonicalName struct {
	SubCategoryID string `db:"id"`
	Name          string `db:"name"`
}

type ItemRef struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type Assignment struct {
	ItemID          string
	ItemName        string
	SubCategoryID   string
	SubCategoryName string
}

type MatchSummary struct {
	Matched     int
	Unmatched   int
	Assignments []Assignment
}
