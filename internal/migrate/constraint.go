package migrate

import (
	"context"
	"fmt"

	"banksampah/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
)

const addCatalogForeignKeySQL = `ALTER TABLE banksampah.catalog_items
	ADD CONSTRAINT catalog_items_sub_category_id_fkey
	FOREIGN KEY (sub_category_id)
	REFERENCES banksampah.sub_categories (id)
	ON DELETE RESTRICT`

// OrphanSource lists catalog items whose sub-category reference points at a
// missing row.
type OrphanSource interface {
	OrphanedSubCategoryRefs(ctx context.Context) ([]types.DanglingRef, error)
}

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnforceCatalogForeignKey validates that every catalog item's sub-category
// reference resolves, then adds the foreign key with ON DELETE RESTRICT so a
// referenced sub-category can never be deleted out from under its items. If
// any orphan exists the constraint is NOT added and the returned
// OrphanedReferencesError carries the offending rows and remediation SQL.
func EnforceCatalogForeignKey(ctx context.Context, exec Execer, source OrphanSource) error {
	orphans, err := source.OrphanedSubCategoryRefs(ctx)
	if err != nil {
		return fmt.Errorf("pre-check orphaned references: %w", err)
	}

	if len(orphans) > 0 {
		return NewOrphanedReferencesError(orphans)
	}

	if _, err := exec.Exec(ctx, addCatalogForeignKeySQL); err != nil {
		return fmt.Errorf("add catalog foreign key: %w", err)
	}

	return nil
}
