// Package slug derives URL-safe, collision-free identifiers from display
// names, scoped to a (waste bank, waste kind) pair.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"banksampah/pkg/types"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned when a display name normalizes to nothing.
var ErrInvalidName = errors.New("name does not normalize to a valid slug")

// Scope is the uniqueness scope for slugs: sub-category slugs are unique per
// waste bank per waste kind, so the same name in different kinds does not
// collide.
type Scope struct {
	WasteBankID string
	WasteKind   types.WasteKind
}

// ExistenceChecker reports whether a slug is already taken inside a scope,
// ignoring the row identified by excludeID (used when renaming a row).
type ExistenceChecker interface {
	SlugExists(ctx context.Context, scope Scope, slug string, excludeID string) (bool, error)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the name, strips diacritics, collapses runs of
// non-alphanumeric characters into single hyphens, and trims hyphens at both
// ends. The result always matches ^[a-z0-9-]+$ or Normalize fails with
// ErrInvalidName.
func Normalize(name string) (string, error) {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw
		// name and let the character filter below drop the garbage.
		folded = name
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if out == "" {
		return "", ErrInvalidName
	}

	return out, nil
}

type Generator struct {
	checker ExistenceChecker
}

func NewGenerator(checker ExistenceChecker) *Generator {
	return &Generator{checker: checker}
}

// Generate returns the normalized slug for name, probing -1, -2, ... suffixes
// sequentially until a free slug is found within the scope. The probe is
// deterministic: the same existing data always yields the same slug.
func (g *Generator) Generate(ctx context.Context, name string, scope Scope, excludeID string) (string, error) {
	base, err := Normalize(name)
	if err != nil {
		return "", err
	}

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := g.checker.SlugExists(ctx, scope, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
