package store

import (
	"banksampah/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const legacyCategoryTableName = "banksampah.legacy_categories"

// LegacyCategoryRepository reads the historical category lookup table. It is
// consumed only by the backfill to derive waste kinds for rows that predate
// the waste_kind column.
type LegacyCategoryRepository struct {
	db Querier
}

func NewLegacyCategoryRepository(db Querier) *LegacyCategoryRepository {
	return &LegacyCategoryRepository{db: db}
}

func (r *LegacyCategoryRepository) KindForLegacyCategory(ctx context.Context, legacyCategoryID string) (types.WasteKind, error) {
	query, args, err := psql().
		Select("id", "code", "name").
		From(legacyCategoryTableName).
		Where(sq.Eq{"id": legacyCategoryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate legacy category query: %w", err)
	}

	var category types.LegacyCategory
	err = pgxscan.Get(ctx, r.db, &category, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return 0, fmt.Errorf("legacy category %s not found", legacyCategoryID)
		}
		return 0, fmt.Errorf("failed to fetch legacy category: %w", err)
	}

	return types.WasteKindFromLegacyCode(category.Code)
}
