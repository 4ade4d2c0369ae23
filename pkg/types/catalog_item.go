package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is a priced waste item a bank accepts. SubCategoryID is a soft
// nullable link; when set, the referenced sub-category must exist and share
// the item's waste kind.
type CatalogItem struct {
	ID            string          `db:"id"`
	WasteBankID   string          `db:"waste_bank_id"`
	SubCategoryID *string         `db:"sub_category_id"`
	WasteKind     WasteKind       `db:"waste_kind"`
	Name          string          `db:"name"`
	PricePerKg    decimal.Decimal `db:"price_per_kg"`
	Description   *string         `db:"description"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
}
