package pos

import "time"

// RawItem is one line item from a vendor POS export after normalization to
// the canonical schema. Header-level fields (customer count, subtotal, item
// total, entry/exit timestamps, categories) repeat on every row of the same
// ticket; the first-seen value is authoritative when they disagree.
type RawItem struct {
	TicketID            string
	BusinessDateRaw     string
	EntryTS             time.Time
	ExitTS              time.Time
	HeaderCustomerCount int
	HeaderSubtotal      int64
	HeaderItemTotal     int64
	Category1           string
	Category2           string
	ProductCode         string
	ProductName         string
	SubMenu             string
	Quantity            int
	UnitPrice           int64

	// BasePrice is optional in vendor exports. Valid reports whether the
	// column was present and parseable; an unparseable value keeps Valid
	// false as a tombstone rather than collapsing to zero.
	BasePrice      int64
	BasePriceValid bool

	// SourceFile records which vendor export the row came from.
	SourceFile string
}
