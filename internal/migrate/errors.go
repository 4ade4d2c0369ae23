package migrate

import (
	"fmt"
	"strings"

	"banksampah/pkg/types"
)

// orphanSampleLimit caps how many offending rows an error message lists
// verbatim; the full id list is always carried.
const orphanSampleLimit = 10

// MigrationPhaseError wraps any failure inside a phase transaction. The
// pipeline halts on the first one; nothing from the failed phase persists.
type MigrationPhaseError struct {
	Phase     int
	Direction Direction
	Err       error
}

func (e *MigrationPhaseError) Error() string {
	return fmt.Sprintf("migration phase %d (%s) failed: %v", e.Phase, e.Direction, e.Err)
}

func (e *MigrationPhaseError) Unwrap() error {
	return e.Err
}

// LookupError means the backfill could not resolve a legacy category for a
// sub-category row. The whole backfill transaction rolls back, because a
// partially backfilled table would make the phase-3 NOT NULL constraints
// unsatisfiable.
type LookupError struct {
	SubCategoryID    string
	LegacyCategoryID string
	Err              error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("resolve legacy category %q for sub category %s: %v",
		e.LegacyCategoryID, e.SubCategoryID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// OrphanedReferencesError is raised by the phase-4 pre-check when catalog
// items reference sub-categories that do not exist. The foreign key is not
// added. The message carries remediation guidance an operator can run as-is.
type OrphanedReferencesError struct {
	Count  int
	Sample []types.DanglingRef
	IDs    []string
}

func NewOrphanedReferencesError(orphans []types.DanglingRef) *OrphanedReferencesError {
	e := &OrphanedReferencesError{
		Count: len(orphans),
		IDs:   make([]string, 0, len(orphans)),
	}
	for i, o := range orphans {
		if i < orphanSampleLimit {
			e.Sample = append(e.Sample, o)
		}
		e.IDs = append(e.IDs, o.ID)
	}
	return e
}

func (e *OrphanedReferencesError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "cannot add foreign key constraint: found %d orphaned catalog items\n\n", e.Count)
	b.WriteString("these items reference sub_category_id values that do not exist:\n")
	for _, o := range e.Sample {
		fmt.Fprintf(&b, "  - id: %s, name: %s, sub_category_id: %s\n", o.ID, o.Name, o.SubCategoryID)
	}
	if e.Count > len(e.Sample) {
		fmt.Fprintf(&b, "  ... and %d more\n", e.Count-len(e.Sample))
	}

	quoted := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		quoted[i] = "'" + id + "'"
	}

	fmt.Fprintf(&b, "\norphaned item ids: %s\n\n", strings.Join(e.IDs, ", "))
	b.WriteString("fix these items before re-running this phase:\n")
	b.WriteString("  1. set sub_category_id to NULL for invalid references, or\n")
	b.WriteString("  2. point sub_category_id at valid sub_categories.id values, or\n")
	b.WriteString("  3. delete the orphaned catalog items\n\n")
	b.WriteString("example SQL to sever the links:\n")
	fmt.Fprintf(&b, "  UPDATE banksampah.catalog_items SET sub_category_id = NULL WHERE id IN (%s);\n",
		strings.Join(quoted, ", "))

	return b.String()
}
