// Package integrity detects and repairs defects in the catalog item to
// sub-category relationship, and assigns sub-categories to unlinked items by
// name matching. Both operations are re-runnable maintenance tasks, not
// one-time migration steps.
package integrity

import (
	"context"
	"fmt"

	"banksampah/pkg/types"
)

// sampleLimit caps how many offending rows a report carries per defect class.
const sampleLimit = 10

// AuditStore is the catalog-store surface the auditor consumes. The pgx
// implementation lives in internal/store; tests use an in-memory fake.
type AuditStore interface {
	OrphanedSubCategoryRefs(ctx context.Context) ([]types.DanglingRef, error)
	KindMismatches(ctx context.Context) ([]types.KindMismatch, error)
	LinkCounts(ctx context.Context) (types.LinkCounts, error)
	RepairLinks(ctx context.Context) (danglingFixed int64, mismatchesFixed int64, err error)
}

type Auditor struct {
	store AuditStore
}

func NewAuditor(store AuditStore) *Auditor {
	return &Auditor{store: store}
}

// Detect reports both defect classes with counts, samples, and aggregate
// link statistics. Found defects are data, not errors: Detect only fails on
// infrastructure problems.
func (a *Auditor) Detect(ctx context.Context) (*types.IntegrityReport, error) {
	dangling, err := a.store.OrphanedSubCategoryRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect dangling references: %w", err)
	}

	mismatches, err := a.store.KindMismatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect kind mismatches: %w", err)
	}

	counts, err := a.store.LinkCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect link counts: %w", err)
	}

	report := &types.IntegrityReport{
		DanglingCount: len(dangling),
		MismatchCount: len(mismatches),
		LinkCounts:    counts,
	}

	report.DanglingSample = dangling
	if len(dangling) > sampleLimit {
		report.DanglingSample = dangling[:sampleLimit]
	}

	report.MismatchSample = mismatches
	if len(mismatches) > sampleLimit {
		report.MismatchSample = mismatches[:sampleLimit]
	}

	return report, nil
}

// Repair severs every dangling or kind-mismatched link by nulling
// sub_category_id. That is the only repair action: the auditor never guesses
// a correct link. After a successful repair both defect counts are zero, and
// a second run fixes nothing.
func (a *Auditor) Repair(ctx context.Context) (*types.RepairSummary, error) {
	danglingFixed, mismatchesFixed, err := a.store.RepairLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("repair links: %w", err)
	}

	return &types.RepairSummary{
		DanglingFixed:   danglingFixed,
		MismatchesFixed: mismatchesFixed,
	}, nil
}
