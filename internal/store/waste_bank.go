package store

import (
	"banksampah/internal/utils"
	"banksampah/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const wasteBankTableName = "banksampah.waste_banks"

var wasteBankColumns = utils.StructTagValues(types.WasteBank{})

type WasteBankRepository struct {
	db Querier
}

func NewWasteBankRepository(db Querier) *WasteBankRepository {
	return &WasteBankRepository{db: db}
}

func (r *WasteBankRepository) AllWasteBanks(ctx context.Context) ([]*types.WasteBank, error) {
	query, args, err := psql().
		Select(wasteBankColumns...).
		From(wasteBankTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate waste banks query: %w", err)
	}

	var banks []*types.WasteBank
	err = pgxscan.Select(ctx, r.db, &banks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch waste banks: %w", err)
	}

	return banks, nil
}

func (r *WasteBankRepository) WasteBankByCode(ctx context.Context, code string) (*types.WasteBank, error) {
	query, args, err := psql().
		Select(wasteBankColumns...).
		From(wasteBankTableName).
		Where(sq.Eq{"code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate waste bank query: %w", err)
	}

	var bank types.WasteBank
	err = pgxscan.Get(ctx, r.db, &bank, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch waste bank: %w", err)
	}

	return &bank, nil
}

func (r *WasteBankRepository) CreateWasteBank(ctx context.Context, bank *types.WasteBank) error {
	query, args, err := psql().
		Insert(wasteBankTableName).
		SetMap(utils.StructToMap(bank)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate waste bank insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert waste bank: %w", err)
	}

	return nil
}
