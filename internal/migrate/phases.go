// Package migrate evolves the sub-category schema through four ordered,
// individually reversible phases. The phase table is the single source of
// truth for both forward and rollback ordering; the runner never duplicates
// sequencing logic.
//
// Phases assume exclusive access to the store for the duration of a run
// (maintenance-window execution); the phase-4 pre-check in particular is a
// check-then-act and is not safe against concurrent writers.
package migrate

import (
	"context"
	"fmt"

	"banksampah/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Step is one unit of work inside a phase: either a bare SQL statement or a
// function run against the phase transaction.
type Step struct {
	Name string
	SQL  string
	Run  func(ctx context.Context, tx pgx.Tx) error
}

func (s Step) run(ctx context.Context, tx pgx.Tx) error {
	if s.Run != nil {
		return s.Run(ctx, tx)
	}
	_, err := tx.Exec(ctx, s.SQL)
	return err
}

// Phase pairs a numbered forward step list with its mirrored inverse.
type Phase struct {
	Number int
	Name   string
	Up     []Step
	Down   []Step
}

// Phases returns the ordered phase table.
//
// Phase 3 adds the new (waste_bank_id, waste_kind, slug) unique constraint
// BEFORE dropping the legacy (waste_bank_id, legacy_code) one, so a uniqueness
// guarantee exists at every instant. The rollback is the exact mirror: the
// legacy constraint is re-added before the new one is dropped.
func Phases() []Phase {
	return []Phase{
		{
			Number: 1,
			Name:   "add slug, is_active and waste_kind columns",
			Up: []Step{
				{Name: "add slug column", SQL: `ALTER TABLE banksampah.sub_categories ADD COLUMN slug varchar(100)`},
				{Name: "add is_active column", SQL: `ALTER TABLE banksampah.sub_categories ADD COLUMN is_active boolean NOT NULL DEFAULT true`},
				{Name: "add waste_kind column", SQL: `ALTER TABLE banksampah.sub_categories ADD COLUMN waste_kind smallint`},
			},
			Down: []Step{
				{Name: "drop waste_kind column", SQL: `ALTER TABLE banksampah.sub_categories DROP COLUMN waste_kind`},
				{Name: "drop is_active column", SQL: `ALTER TABLE banksampah.sub_categories DROP COLUMN is_active`},
				{Name: "drop slug column", SQL: `ALTER TABLE banksampah.sub_categories DROP COLUMN slug`},
			},
		},
		{
			Number: 2,
			Name:   "backfill slug, is_active and waste_kind",
			Up: []Step{
				{
					Name: "backfill derived columns",
					Run: func(ctx context.Context, tx pgx.Tx) error {
						subCategories := store.NewSubCategoryRepository(tx)
						lookup := store.NewLegacyCategoryRepository(tx)

						result, err := NewBackfill(subCategories, lookup).Run(ctx)
						if err != nil {
							return err
						}

						logrus.WithFields(logrus.Fields{
							"updated": result.Updated,
							"skipped": result.Skipped,
						}).Info("sub category backfill complete")

						return nil
					},
				},
			},
			Down: []Step{
				{Name: "reset derived columns", SQL: `UPDATE banksampah.sub_categories SET slug = NULL, is_active = true, waste_kind = NULL`},
			},
		},
		{
			Number: 3,
			Name:   "constrain slug and waste_kind",
			Up: []Step{
				{Name: "require slug", SQL: `ALTER TABLE banksampah.sub_categories ALTER COLUMN slug SET NOT NULL`},
				{Name: "require waste_kind", SQL: `ALTER TABLE banksampah.sub_categories ALTER COLUMN waste_kind SET NOT NULL`},
				{Name: "add bank/kind/slug unique constraint", SQL: `ALTER TABLE banksampah.sub_categories ADD CONSTRAINT sub_categories_bank_kind_slug_key UNIQUE (waste_bank_id, waste_kind, slug)`},
				{Name: "drop legacy code unique constraint", SQL: `ALTER TABLE banksampah.sub_categories DROP CONSTRAINT sub_categories_bank_legacy_code_key`},
				{Name: "add bank/kind/active index", SQL: `CREATE INDEX idx_sub_categories_bank_kind_active ON banksampah.sub_categories (waste_bank_id, waste_kind, is_active)`},
			},
			Down: []Step{
				{Name: "drop bank/kind/active index", SQL: `DROP INDEX banksampah.idx_sub_categories_bank_kind_active`},
				{Name: "re-add legacy code unique constraint", SQL: `ALTER TABLE banksampah.sub_categories ADD CONSTRAINT sub_categories_bank_legacy_code_key UNIQUE (waste_bank_id, legacy_code)`},
				{Name: "drop bank/kind/slug unique constraint", SQL: `ALTER TABLE banksampah.sub_categories DROP CONSTRAINT sub_categories_bank_kind_slug_key`},
				{Name: "relax waste_kind", SQL: `ALTER TABLE banksampah.sub_categories ALTER COLUMN waste_kind DROP NOT NULL`},
				{Name: "relax slug", SQL: `ALTER TABLE banksampah.sub_categories ALTER COLUMN slug DROP NOT NULL`},
			},
		},
		{
			Number: 4,
			Name:   "add catalog item foreign key",
			Up: []Step{
				{
					Name: "validate references and add foreign key",
					Run: func(ctx context.Context, tx pgx.Tx) error {
						return EnforceCatalogForeignKey(ctx, tx, store.NewCatalogItemRepository(tx))
					},
				},
			},
			Down: []Step{
				{Name: "drop catalog item foreign key", SQL: `ALTER TABLE banksampah.catalog_items DROP CONSTRAINT catalog_items_sub_category_id_fkey`},
			},
		},
	}
}

type Pipeline struct {
	pool   *pgxpool.Pool
	phases []Phase
}

func NewPipeline(pool *pgxpool.Pool) *Pipeline {
	return &Pipeline{pool: pool, phases: Phases()}
}

func (p *Pipeline) phase(number int) (Phase, error) {
	for _, ph := range p.phases {
		if ph.Number == number {
			return ph, nil
		}
	}
	return Phase{}, fmt.Errorf("unknown migration phase %d", number)
}

// Run applies one phase inside a single transaction. Any step failing rolls
// the whole phase back and surfaces a MigrationPhaseError.
func (p *Pipeline) Run(ctx context.Context, number int) error {
	return p.execute(ctx, number, DirectionUp)
}

// Rollback reverses one phase inside a single transaction.
func (p *Pipeline) Rollback(ctx context.Context, number int) error {
	return p.execute(ctx, number, DirectionDown)
}

// RunTo applies phases 1..target in order, halting on the first failure so
// later phases never run against a partially migrated schema.
func (p *Pipeline) RunTo(ctx context.Context, target int) error {
	if _, err := p.phase(target); err != nil {
		return err
	}

	for _, ph := range p.phases {
		if ph.Number > target {
			break
		}
		if err := p.Run(ctx, ph.Number); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) execute(ctx context.Context, number int, direction Direction) error {
	ph, err := p.phase(number)
	if err != nil {
		return err
	}

	steps := ph.Up
	if direction == DirectionDown {
		steps = ph.Down
	}

	logrus.WithFields(logrus.Fields{
		"phase":     ph.Number,
		"name":      ph.Name,
		"direction": direction,
	}).Info("running migration phase")

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return &MigrationPhaseError{Phase: number, Direction: direction, Err: err}
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, step := range steps {
		if err := step.run(ctx, tx); err != nil {
			return &MigrationPhaseError{
				Phase:     number,
				Direction: direction,
				Err:       fmt.Errorf("step %q: %w", step.Name, err),
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &MigrationPhaseError{Phase: number, Direction: direction, Err: err}
	}

	return nil
}
