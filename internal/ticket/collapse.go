package ticket

import (
	"log/slog"
	"slices"
	"sort"

	"posreport/internal/businessday"
	"posreport/internal/pos"
)

// Options controls the collapse.
type Options struct {
	Rules businessday.Rules
	// ClipDurations clips stay duration at MaxDurationMinutes. The raw
	// duration is kept alongside for diagnostics.
	ClipDurations      bool
	MaxDurationMinutes int
}

// Conflicts counts header-field disagreements observed per canonical field
// name across all tickets.
type Conflicts map[string]int

// Total returns the sum of all per-field conflict counts.
func (c Conflicts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Log emits one warning line per conflicting field.
func (c Conflicts) Log(logger *slog.Logger) {
	fields := make([]string, 0, len(c))
	for field := range c {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		logger.Warn("header field conflict (first-seen wins)",
			slog.String("field", field),
			slog.Int("rows", c[field]),
		)
	}
}

// Collapse partitions raw items by ticket ID and emits one Ticket per
// partition in first-seen order.
func Collapse(items []pos.RawItem, opts Options) ([]pos.Ticket, Conflicts) {
	conflicts := make(Conflicts)
	order := make([]string, 0, len(items)/4)
	partitions := make(map[string][]pos.RawItem, len(items)/4)

	for _, item := range items {
		if _, seen := partitions[item.TicketID]; !seen {
			order = append(order, item.TicketID)
		}
		partitions[item.TicketID] = append(partitions[item.TicketID], item)
	}

	tickets := make([]pos.Ticket, 0, len(order))
	for _, id := range order {
		tickets = append(tickets, collapseOne(partitions[id], opts, conflicts))
	}
	return tickets, conflicts
}

func collapseOne(items []pos.RawItem, opts Options, conflicts Conflicts) pos.Ticket {
	first := items[0]
	for _, item := range items[1:] {
		if item.HeaderCustomerCount != first.HeaderCustomerCount {
			conflicts["customer_count"]++
		}
		if item.HeaderSubtotal != first.HeaderSubtotal {
			conflicts["subtotal"]++
		}
		if item.HeaderItemTotal != first.HeaderItemTotal {
			conflicts["item_total"]++
		}
		if !item.EntryTS.Equal(first.EntryTS) {
			conflicts["entry_ts"]++
		}
		if !item.ExitTS.Equal(first.ExitTS) {
			conflicts["exit_ts"]++
		}
		if item.Category1 != first.Category1 {
			conflicts["category1"]++
		}
	}

	businessDate := opts.Rules.BusinessDate(first.EntryTS)
	rawDuration := int(first.ExitTS.Sub(first.EntryTS).Minutes())
	if rawDuration < 0 {
		rawDuration = 0
	}
	duration := rawDuration
	clipped := false
	if opts.ClipDurations && opts.MaxDurationMinutes > 0 && duration > opts.MaxDurationMinutes {
		duration = opts.MaxDurationMinutes
		clipped = true
	}

	var codes []string
	for _, item := range items {
		if item.ProductCode != "" && !slices.Contains(codes, item.ProductCode) {
			codes = append(codes, item.ProductCode)
		}
	}

	return pos.Ticket{
		TicketID:           first.TicketID,
		BusinessDate:       businessDate,
		Weekday:            businessDate.Weekday(),
		EntryTS:            first.EntryTS,
		ExitTS:             first.ExitTS,
		CustomerCount:      first.HeaderCustomerCount,
		Subtotal:           first.HeaderSubtotal,
		ItemTotal:          first.HeaderItemTotal,
		Category1:          first.Category1,
		ProductCodes:       codes,
		Daypart:            opts.Rules.Daypart(first.EntryTS),
		AdjustedHour:       opts.Rules.AdjustedHour(first.EntryTS),
		DurationMinutes:    duration,
		RawDurationMinutes: rawDuration,
		DurationClipped:    clipped,
	}
}
