package pos

import "time"

// Daypart is the coarse time-of-day partition a ticket belongs to, anchored
// at the configured daypart split hour using the late-night-aware hour.
type Daypart string

const (
	DaypartLunch  Daypart = "Lunch"
	DaypartDinner Daypart = "Dinner"
	DaypartOther  Daypart = "Other"
)

// Ticket is one receipt: a single visit by one party, collapsed from the
// row-per-item RawItem table.
type Ticket struct {
	TicketID      string
	BusinessDate  time.Time
	Weekday       time.Weekday
	EntryTS       time.Time
	ExitTS        time.Time
	CustomerCount int
	Subtotal      int64
	ItemTotal     int64
	Category1     string
	ProductCodes  []string
	Daypart       Daypart

	// AdjustedHour is the entry hour in late-night-aware form: hours before
	// the cutoff are shifted by 24 so a 02:00 entry sorts after 21:00.
	AdjustedHour int

	// DurationMinutes is the stay length, clipped to the configured maximum
	// when clipping is enabled. RawDurationMinutes always keeps the
	// unclipped value.
	DurationMinutes    int
	RawDurationMinutes int
	DurationClipped    bool
}

// CountsForCustomers reports whether the ticket participates in
// per-customer metrics. Zero-customer tickets stay in ticket counts but are
// excluded from customer totals and spend-per-customer.
func (t Ticket) CountsForCustomers() bool {
	return t.CustomerCount > 0
}
