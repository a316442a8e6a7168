package segment_test

import (
	"testing"
	"time"

	"posreport/internal/kpi"
	"posreport/internal/pos"
	"posreport/internal/segment"
)

func ticketAt(date time.Time, adjustedHour int, customers int, subtotal int64) pos.Ticket {
	daypart := pos.DaypartLunch
	if adjustedHour >= 16 {
		daypart = pos.DaypartDinner
	}
	return pos.Ticket{
		TicketID:      "T",
		BusinessDate:  date,
		Weekday:       date.Weekday(),
		CustomerCount: customers,
		Subtotal:      subtotal,
		Daypart:       daypart,
		AdjustedHour:  adjustedHour,
	}
}

func TestCrossTabWeekdayShowsEveryBucket(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tickets := []pos.Ticket{ticketAt(monday, 12, 2, 3000)}

	rows := segment.CrossTab(&kpi.Engine{}, tickets, pos.MonthPeriod(2026, time.January), pos.AxisWeekday)
	if len(rows) != 7 {
		t.Fatalf("got %d weekday rows, want 7", len(rows))
	}
	if rows[0].Value != "Mon" || rows[6].Value != "Sun" {
		t.Fatalf("weekday order wrong: %s..%s", rows[0].Value, rows[6].Value)
	}
	if rows[0].Aggregate.Sales != 3000 {
		t.Fatalf("Monday sales = %d", rows[0].Aggregate.Sales)
	}
	if rows[1].Aggregate.TicketCount != 0 {
		t.Fatalf("empty weekday should aggregate to zero: %+v", rows[1].Aggregate)
	}
}

func TestCrossTabHourBucketsSortByAdjustedHour(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tickets := []pos.Ticket{
		ticketAt(date, 25, 2, 1000),
		ticketAt(date, 11, 2, 2000),
		ticketAt(date, 19, 2, 3000),
	}

	rows := segment.CrossTab(&kpi.Engine{}, tickets, pos.Period{}, pos.AxisHourBucket)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := []string{"11:00", "19:00", "25:00"}
	for i, r := range rows {
		if r.Value != want[i] {
			t.Fatalf("bucket order = %v, want late night last", rows)
		}
	}
}

func TestCrossTabHourBucketWidth(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tickets := []pos.Ticket{
		ticketAt(date, 18, 2, 1000),
		ticketAt(date, 19, 3, 2000),
		ticketAt(date, 25, 2, 3000),
	}

	rows := segment.CrossTab(&kpi.Engine{HourBucketHours: 2}, tickets, pos.Period{}, pos.AxisHourBucket)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 18:00-20:00 and 24:00-26:00", len(rows))
	}
	if rows[0].Value != "18:00-20:00" || rows[0].Aggregate.Sales != 3000 {
		t.Fatalf("wide bucket wrong: %q %+v", rows[0].Value, rows[0].Aggregate)
	}
	if rows[1].Value != "24:00-26:00" || rows[1].Aggregate.TicketCount != 1 {
		t.Fatalf("late-night bucket wrong: %q %+v", rows[1].Value, rows[1].Aggregate)
	}
}

func TestCrossTabProductSlicesOverlap(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	a := ticketAt(date, 12, 2, 3000)
	a.ProductCodes = []string{"1001", "2002"}
	b := ticketAt(date, 13, 2, 5000)
	b.ProductCodes = []string{"2002"}

	rows := segment.CrossTab(&kpi.Engine{}, []pos.Ticket{a, b}, pos.Period{}, pos.AxisProduct)
	if len(rows) != 2 {
		t.Fatalf("got %d product rows", len(rows))
	}
	// A ticket carrying two codes counts toward both, so product slices
	// overlap rather than partition.
	byCode := map[string]int64{}
	for _, r := range rows {
		byCode[r.Value] = r.Aggregate.Sales
	}
	if byCode["1001"] != 3000 {
		t.Fatalf("1001 sales = %d", byCode["1001"])
	}
	if byCode["2002"] != 8000 {
		t.Fatalf("2002 sales = %d", byCode["2002"])
	}
}

func TestSliceValuesUnionsBothPeriods(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	a := ticketAt(jan, 12, 2, 3000)
	a.Category1 = "EAT IN"
	b := ticketAt(feb, 12, 2, 3000)
	b.Category1 = "TAKE OUT"

	values := segment.SliceValues(&kpi.Engine{}, []pos.Ticket{a, b},
		pos.MonthPeriod(2026, time.January), pos.MonthPeriod(2026, time.February), pos.AxisCategory1)
	if len(values) != 2 {
		t.Fatalf("got %v, want both categories", values)
	}
}
