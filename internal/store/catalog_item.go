package store

import (
	"banksampah/internal/utils"
	"banksampah/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const catalogItemTableName = "banksampah.catalog_items"

type CatalogItemRepository struct {
	db Querier
}

func NewCatalogItemRepository(db Querier) *CatalogItemRepository {
	return &CatalogItemRepository{db: db}
}

func (r *CatalogItemRepository) CreateCatalogItem(ctx context.Context, item *types.CatalogItem) error {
	query, args, err := psql().
		Insert(catalogItemTableName).
		SetMap(utils.StructToMap(item)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate catalog item insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert catalog item: %w", err)
	}

	return nil
}

func (r *CatalogItemRepository) ItemExistsByName(ctx context.Context, bankID string, name string) (bool, error) {
	inner, args, err := psql().
		Select("1").
		From(catalogItemTableName).
		Where(sq.Eq{"waste_bank_id": bankID, "name": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate catalog item existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, "SELECT EXISTS ("+inner+")", args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check catalog item existence: %w", err)
	}

	return exists, nil
}

// OrphanedSubCategoryRefs returns catalog items whose sub_category_id points
// at a sub-category row that no longer exists.
func (r *CatalogItemRepository) OrphanedSubCategoryRefs(ctx context.Context) ([]types.DanglingRef, error) {
	query, args, err := psql().
		Select("k.id", "k.name", "k.sub_category_id").
		From(catalogItemTableName + " k").
		LeftJoin(subCategoryTableName + " s ON s.id = k.sub_category_id").
		Where("k.sub_category_id IS NOT NULL").
		Where("s.id IS NULL").
		OrderBy("k.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate orphaned refs query: %w", err)
	}

	var refs []types.DanglingRef
	err = pgxscan.Select(ctx, r.db, &refs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orphaned refs: %w", err)
	}

	return refs, nil
}

// KindMismatches returns catalog items linked to an existing sub-category
// whose waste kind differs from the item's.
func (r *CatalogItemRepository) KindMismatches(ctx context.Context) ([]types.KindMismatch, error) {
	query, args, err := psql().
		Select(
			"k.id",
			"k.name",
			"k.waste_kind AS item_kind",
			"s.waste_kind AS sub_category_kind",
			"s.name AS sub_category_name",
		).
		From(catalogItemTableName + " k").
		Join(subCategoryTableName + " s ON s.id = k.sub_category_id").
		Where("k.waste_kind <> s.waste_kind").
		OrderBy("k.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate kind mismatch query: %w", err)
	}

	var mismatches []types.KindMismatch
	err = pgxscan.Select(ctx, r.db, &mismatches, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kind mismatches: %w", err)
	}

	return mismatches, nil
}

func (r *CatalogItemRepository) LinkCounts(ctx context.Context) (types.LinkCounts, error) {
	query, args, err := psql().
		Select(
			"count(*) FILTER (WHERE sub_category_id IS NOT NULL) AS with_sub_category",
			"count(*) FILTER (WHERE sub_category_id IS NULL) AS without_sub_category",
			fmt.Sprintf("count(*) FILTER (WHERE waste_kind = %d) AS dry", types.WasteKindDry),
			fmt.Sprintf("count(*) FILTER (WHERE waste_kind = %d) AS wet", types.WasteKindWet),
		).
		From(catalogItemTableName).
		ToSql()
	if err != nil {
		return types.LinkCounts{}, fmt.Errorf("failed to generate link counts query: %w", err)
	}

	var counts types.LinkCounts
	err = pgxscan.Get(ctx, r.db, &counts, query, args...)
	if err != nil {
		return types.LinkCounts{}, fmt.Errorf("failed to fetch link counts: %w", err)
	}

	return counts, nil
}

// RepairLinks severs dangling and kind-mismatched sub-category links by
// setting sub_category_id to NULL. Both updates run in one transaction so a
// repair pass never acts on a stale snapshot. Already-correct rows are
// untouched, so re-running is a no-op.
func (r *CatalogItemRepository) RepairLinks(ctx context.Context) (danglingFixed int64, mismatchesFixed int64, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin repair transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	danglingSQL := fmt.Sprintf(`UPDATE %s k
		SET sub_category_id = NULL
		WHERE k.sub_category_id IS NOT NULL
		  AND NOT EXISTS (SELECT 1 FROM %s s WHERE s.id = k.sub_category_id)`,
		catalogItemTableName, subCategoryTableName)

	tag, err := tx.Exec(ctx, danglingSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to repair dangling refs: %w", err)
	}
	danglingFixed = tag.RowsAffected()

	mismatchSQL := fmt.Sprintf(`UPDATE %s k
		SET sub_category_id = NULL
		FROM %s s
		WHERE k.sub_category_id = s.id
		  AND k.waste_kind <> s.waste_kind`,
		catalogItemTableName, subCategoryTableName)

	tag, err = tx.Exec(ctx, mismatchSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to repair kind mismatches: %w", err)
	}
	mismatchesFixed = tag.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit repair transaction: %w", err)
	}

	return danglingFixed, mismatchesFixed, nil
}

// UnlinkedItems returns catalog items for one bank and kind that have no
// sub-category link yet.
func (r *CatalogItemRepository) UnlinkedItems(ctx context.Context, bankID string, kind types.WasteKind) ([]types.ItemRef, error) {
	query, args, err := psql().
		Select("id", "name").
		From(catalogItemTableName).
		Where(sq.Eq{"waste_bank_id": bankID, "waste_kind": kind}).
		Where("sub_category_id IS NULL").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate unlinked items query: %w", err)
	}

	var items []types.ItemRef
	err = pgxscan.Select(ctx, r.db, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlinked items: %w", err)
	}

	return items, nil
}

func (r *CatalogItemRepository) AssignSubCategory(ctx context.Context, itemID string, subCategoryID string) error {
	query, args, err := psql().
		Update(catalogItemTableName).
		Set("sub_category_id", subCategoryID).
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate assign query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to assign sub category to item %s: %w", itemID, err)
	}

	return nil
}
