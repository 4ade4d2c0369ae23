package store

import (
	"banksampah/internal/slug"
	"banksampah/internal/utils"
	"banksampah/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const subCategoryTableName = "banksampah.sub_categories"

var subCategoryColumns = utils.StructTagValues(types.SubCategory{})

type SubCategoryRepository struct {
	db Querier
}

func NewSubCategoryRepository(db Querier) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

func (r *SubCategoryRepository) SubCategoriesByBankAndKind(ctx context.Context, bankID string, kind types.WasteKind) ([]*types.SubCategory, error) {
	query, args, err := psql().
		Select(subCategoryColumns...).
		From(subCategoryTableName).
		Where(sq.Eq{"waste_bank_id": bankID, "waste_kind": kind, "is_active": true}).
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sub categories query: %w", err)
	}

	var subCategories []*types.SubCategory
	err = pgxscan.Select(ctx, r.db, &subCategories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sub categories: %w", err)
	}

	return subCategories, nil
}

func (r *SubCategoryRepository) SubCategoryBySlug(ctx context.Context, bankID string, kind types.WasteKind, slugValue string) (*types.SubCategory, error) {
	query, args, err := psql().
		Select(subCategoryColumns...).
		From(subCategoryTableName).
		Where(sq.Eq{"waste_bank_id": bankID, "waste_kind": kind, "slug": slugValue}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sub category query: %w", err)
	}

	var subCategory types.SubCategory
	err = pgxscan.Get(ctx, r.db, &subCategory, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sub category: %w", err)
	}

	return &subCategory, nil
}

func (r *SubCategoryRepository) CreateSubCategory(ctx context.Context, subCategory *types.SubCategory) error {
	query, args, err := psql().
		Insert(subCategoryTableName).
		SetMap(utils.StructToMap(subCategory)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate sub category insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert sub category: %w", err)
	}

	return nil
}

// SlugExists satisfies slug.ExistenceChecker. An empty excludeID matches no
// row, so creation and rename share the same probe.
func (r *SubCategoryRepository) SlugExists(ctx context.Context, scope slug.Scope, slugValue string, excludeID string) (bool, error) {
	inner, args, err := psql().
		Select("1").
		From(subCategoryTableName).
		Where(sq.Eq{
			"waste_bank_id": scope.WasteBankID,
			"waste_kind":    scope.WasteKind,
			"slug":          slugValue,
		}).
		Where(sq.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate slug existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, "SELECT EXISTS ("+inner+")", args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}

	return exists, nil
}

// CanonicalNames returns the active sub-category names for one bank and kind,
// ordered by name so downstream matching iterates deterministically.
func (r *SubCategoryRepository) CanonicalNames(ctx context.Context, bankID string, kind types.WasteKind) ([]types.CanonicalName, error) {
	query, args, err := psql().
		Select("id", "name").
		From(subCategoryTableName).
		Where(sq.Eq{"waste_bank_id": bankID, "waste_kind": kind, "is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate canonical names query: %w", err)
	}

	var names []types.CanonicalName
	err = pgxscan.Select(ctx, r.db, &names, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch canonical names: %w", err)
	}

	return names, nil
}

// ListForBackfill returns every sub-category row in its pre-migration shape,
// including the legacy category reference and active flag.
func (r *SubCategoryRepository) ListForBackfill(ctx context.Context) ([]types.SubCategoryBackfillRow, error) {
	query, args, err := psql().
		Select("id", "waste_bank_id", "name", "legacy_category_id", "legacy_active", "slug", "waste_kind").
		From(subCategoryTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate backfill listing query: %w", err)
	}

	var rows []types.SubCategoryBackfillRow
	err = pgxscan.Select(ctx, r.db, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backfill rows: %w", err)
	}

	return rows, nil
}

func (r *SubCategoryRepository) ApplyBackfill(ctx context.Context, id string, slugValue string, kind types.WasteKind, active bool) error {
	query, args, err := psql().
		Update(subCategoryTableName).
		Set("slug", slugValue).
		Set("waste_kind", kind).
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate backfill update query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to backfill sub category %s: %w", id, err)
	}

	return nil
}
