package ingest

import "strings"

// Canonical column names expected after vendor mapping.
const (
	ColTicketID         = "ticket_id"
	ColBusinessDate     = "business_date"
	ColWeekday          = "weekday"
	ColEntryTS          = "entry_ts"
	ColExitTS           = "exit_ts"
	ColCustomerCount    = "customer_count"
	ColSubtotal         = "subtotal"
	ColItemTotal        = "item_total"
	ColCategory1        = "category1"
	ColCategory2        = "category2"
	ColProductComposite = "product_composite"
	ColProductCode      = "product_code"
	ColProductName      = "product_name"
	ColSubMenu          = "sub_menu"
	ColQuantity         = "quantity"
	ColUnitPrice        = "unit_price"
	ColBasePrice        = "base_price"
)

// requiredColumns must all be present after mapping or the file is skipped.
var requiredColumns = []string{
	ColTicketID,
	ColEntryTS,
	ColExitTS,
	ColCustomerCount,
	ColSubtotal,
}

// defaultColumnMap translates the vendor export headers to canonical names.
// Canonical names map to themselves so the pipeline's own merged output and
// pre-normalized files ingest without configuration.
var defaultColumnMap = map[string]string{
	"伝票番号":   ColTicketID,
	"営業日":    ColBusinessDate,
	"曜日":     ColWeekday,
	"入店日時":   ColEntryTS,
	"退店日時":   ColExitTS,
	"客数":     ColCustomerCount,
	"小計":     ColSubtotal,
	"商品計":    ColItemTotal,
	"分類1":    ColCategory1,
	"分類2":    ColCategory2,
	"商品":     ColProductComposite,
	"商品コード":  ColProductCode,
	"商品名":    ColProductName,
	"サブメニュー": ColSubMenu,
	"数量":     ColQuantity,
	"単価":     ColUnitPrice,
	"本体価格":   ColBasePrice,
}

// columnIndex maps canonical column names to their position in a header
// row. Unknown vendor columns are ignored.
type columnIndex map[string]int

// indexColumns applies the vendor dictionary (defaults overlaid with any
// config overrides) to a parsed header record.
func indexColumns(header []string, overrides map[string]string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		canonical, ok := overrides[trimmed]
		if !ok {
			canonical, ok = defaultColumnMap[trimmed]
		}
		if !ok {
			// Canonical names pass through unchanged.
			if isCanonical(trimmed) {
				canonical = trimmed
			} else {
				continue
			}
		}
		if _, seen := idx[canonical]; !seen {
			idx[canonical] = i
		}
	}
	return idx
}

func isCanonical(name string) bool {
	switch name {
	case ColTicketID, ColBusinessDate, ColWeekday, ColEntryTS, ColExitTS,
		ColCustomerCount, ColSubtotal, ColItemTotal, ColCategory1, ColCategory2,
		ColProductComposite, ColProductCode, ColProductName, ColSubMenu,
		ColQuantity, ColUnitPrice, ColBasePrice:
		return true
	}
	return false
}

// missingRequired returns the required canonical columns absent from the
// index.
func (idx columnIndex) missingRequired() []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// value returns the record field for a canonical column, or "" when the
// column is absent or the record is short.
func (idx columnIndex) value(record []string, canonical string) string {
	i, ok := idx[canonical]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// has reports whether the canonical column exists in this file.
func (idx columnIndex) has(canonical string) bool {
	_, ok := idx[canonical]
	return ok
}
