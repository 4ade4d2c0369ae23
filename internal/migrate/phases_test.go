package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepIndex(steps []Step, substr string) int {
	for i, s := range steps {
		if strings.Contains(s.SQL, substr) {
			return i
		}
	}
	return -1
}

func TestPhasesAreNumberedAndReversible(t *testing.T) {
	phases := Phases()
	require.Len(t, phases, 4)

	for i, ph := range phases {
		assert.Equal(t, i+1, ph.Number)
		assert.NotEmpty(t, ph.Name)
		assert.NotEmpty(t, ph.Up, "phase %d has no forward steps", ph.Number)
		assert.NotEmpty(t, ph.Down, "phase %d has no rollback steps", ph.Number)
	}
}

func TestPhaseThreeConstraintOrdering(t *testing.T) {
	phases := Phases()
	phase3 := phases[2]
	require.Equal(t, 3, phase3.Number)

	// Forward: the new unique constraint must exist before the legacy one is
	// dropped, so there is never an instant with no uniqueness enforcement.
	addNew := stepIndex(phase3.Up, "ADD CONSTRAINT sub_categories_bank_kind_slug_key")
	dropOld := stepIndex(phase3.Up, "DROP CONSTRAINT sub_categories_bank_legacy_code_key")
	require.GreaterOrEqual(t, addNew, 0)
	require.GreaterOrEqual(t, dropOld, 0)
	assert.Less(t, addNew, dropOld)

	// Rollback is the mirror: the legacy constraint comes back before the new
	// one is dropped.
	readdOld := stepIndex(phase3.Down, "ADD CONSTRAINT sub_categories_bank_legacy_code_key")
	dropNew := stepIndex(phase3.Down, "DROP CONSTRAINT sub_categories_bank_kind_slug_key")
	require.GreaterOrEqual(t, readdOld, 0)
	require.GreaterOrEqual(t, dropNew, 0)
	assert.Less(t, readdOld, dropNew)
}

func TestPhaseThreeRelaxesColumnsLast(t *testing.T) {
	phase3 := Phases()[2]

	dropNew := stepIndex(phase3.Down, "DROP CONSTRAINT sub_categories_bank_kind_slug_key")
	relaxKind := stepIndex(phase3.Down, "waste_kind DROP NOT NULL")
	relaxSlug := stepIndex(phase3.Down, "slug DROP NOT NULL")

	require.GreaterOrEqual(t, relaxKind, 0)
	require.GreaterOrEqual(t, relaxSlug, 0)
	assert.Less(t, dropNew, relaxKind)
	assert.Less(t, dropNew, relaxSlug)
}

func TestPhaseOneRollbackMirrorsForwardOrder(t *testing.T) {
	phase1 := Phases()[0]
	require.Len(t, phase1.Up, 3)
	require.Len(t, phase1.Down, 3)

	// Columns are dropped in the reverse order they were added.
	assert.Contains(t, phase1.Up[0].SQL, "ADD COLUMN slug")
	assert.Contains(t, phase1.Down[len(phase1.Down)-1].SQL, "DROP COLUMN slug")
	assert.Contains(t, phase1.Up[2].SQL, "ADD COLUMN waste_kind")
	assert.Contains(t, phase1.Down[0].SQL, "DROP COLUMN waste_kind")
}

func TestPhaseFourRollbackDropsOnlyTheForeignKey(t *testing.T) {
	phase4 := Phases()[3]
	require.Len(t, phase4.Down, 1)
	assert.Contains(t, phase4.Down[0].SQL, "DROP CONSTRAINT catalog_items_sub_category_id_fkey")
}
