package integrity

import (
	"context"
	"fmt"
	"strings"

	"banksampah/pkg/types"
)

// BestMatch selects the canonical name most likely to classify itemName: the
// longest canonical name contained (case-insensitively) in the item name
// wins. Equal-length ties resolve to the lexicographically smaller name, so
// the result is deterministic regardless of input order. The boolean is false
// when nothing matches, which is an expected outcome, not an error.
func BestMatch(itemName string, canonical []types.CanonicalName) (types.CanonicalName, bool) {
	haystack := strings.ToLower(itemName)

	var best types.CanonicalName
	found := false

	for _, c := range canonical {
		if c.Name == "" {
			continue
		}
		if !strings.Contains(haystack, strings.ToLower(c.Name)) {
			continue
		}

		if !found ||
			len(c.Name) > len(best.Name) ||
			(len(c.Name) == len(best.Name) && c.Name < best.Name) {
			best = c
			found = true
		}
	}

	return best, found
}

// CanonicalSource lists the canonical sub-category names for one bank and
// kind. Scoping by bank as well as kind keeps a bank's items from being
// linked to another bank's sub-categories.
type CanonicalSource interface {
	CanonicalNames(ctx context.Context, bankID string, kind types.WasteKind) ([]types.CanonicalName, error)
}

// CatalogLinkStore exposes the unlinked items of a bank and persists
// assignments.
type CatalogLinkStore interface {
	UnlinkedItems(ctx context.Context, bankID string, kind types.WasteKind) ([]types.ItemRef, error)
	AssignSubCategory(ctx context.Context, itemID string, subCategoryID string) error
}

type Matcher struct {
	subCategories CanonicalSource
	items         CatalogLinkStore
}

func NewMatcher(subCategories CanonicalSource, items CatalogLinkStore) *Matcher {
	return &Matcher{subCategories: subCategories, items: items}
}

// MatchItems assigns a sub-category to every unlinked catalog item of the
// bank and kind whose name contains a canonical sub-category name. Items with
// no match keep a null link. Already-linked items are never touched, so
// re-running is safe.
func (m *Matcher) MatchItems(ctx context.Context, bankID string, kind types.WasteKind) (*types.MatchSummary, error) {
	canonical, err := m.subCategories.CanonicalNames(ctx, bankID, kind)
	if err != nil {
		return nil, fmt.Errorf("load canonical names: %w", err)
	}

	items, err := m.items.UnlinkedItems(ctx, bankID, kind)
	if err != nil {
		return nil, fmt.Errorf("load unlinked items: %w", err)
	}

	summary := &types.MatchSummary{}

	for _, item := range items {
		match, ok := BestMatch(item.Name, canonical)
		if !ok {
			summary.Unmatched++
			continue
		}

		if err := m.items.AssignSubCategory(ctx, item.ID, match.SubCategoryID); err != nil {
			return nil, fmt.Errorf("assign item %s: %w", item.ID, err)
		}

		summary.Matched++
		summary.Assignments = append(summary.Assignments, types.Assignment{
			ItemID:          item.ID,
			ItemName:        item.Name,
			SubCategoryID:   match.SubCategoryID,
			SubCategoryName: match.Name,
		})
	}

	return summary, nil
}
