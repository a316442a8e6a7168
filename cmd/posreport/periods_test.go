package main

import (
	"errors"
	"testing"

	"posreport/internal/kpi"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
)

func TestResolvePeriodArgLiteral(t *testing.T) {
	ps, err := resolvePeriodArg("--to", "2026-01", pos.Period{})
	if err != nil {
		t.Fatalf("resolvePeriodArg: %v", err)
	}
	if ps.label != "2026-01" || len(ps.periods) != 1 {
		t.Fatalf("period set = %+v", ps)
	}
}

func TestResolvePeriodArgRelativeKeywords(t *testing.T) {
	anchor, _ := pos.ParsePeriod("2026-03")

	prev, err := resolvePeriodArg("--from", "previous", anchor)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if prev.label != "2026-02" {
		t.Fatalf("previous label = %s", prev.label)
	}

	yearAgo, err := resolvePeriodArg("--from", "year-ago", anchor)
	if err != nil {
		t.Fatalf("year-ago: %v", err)
	}
	if yearAgo.label != "2025-03" {
		t.Fatalf("year-ago label = %s", yearAgo.label)
	}
}

func TestResolvePeriodArgTrailing(t *testing.T) {
	anchor, _ := pos.ParsePeriod("2026-W10")

	ps, err := resolvePeriodArg("--from", "trailing:4", anchor)
	if err != nil {
		t.Fatalf("trailing: %v", err)
	}
	if len(ps.periods) != 4 {
		t.Fatalf("got %d periods", len(ps.periods))
	}
	if ps.periods[0].Label != "2026-W06" || ps.periods[3].Label != "2026-W09" {
		t.Fatalf("trailing window = %s..%s", ps.periods[0].Label, ps.periods[3].Label)
	}

	span := ps.span()
	if !span.Start.Equal(ps.periods[0].Start) || !span.End.Equal(ps.periods[3].End) {
		t.Fatalf("span = %+v", span)
	}
}

func TestResolvePeriodArgUsageErrors(t *testing.T) {
	for _, arg := range []string{"bogus", "trailing:0", "trailing:4", "previous"} {
		_, err := resolvePeriodArg("--from", arg, pos.Period{})
		if err == nil {
			t.Fatalf("resolvePeriodArg(%q) succeeded", arg)
		}
		if !errors.Is(err, pipeline.ErrUsage) {
			t.Fatalf("resolvePeriodArg(%q) error not tagged as usage: %v", arg, err)
		}
	}
}

func TestValuesForAveragesTrailingWindow(t *testing.T) {
	jan := pos.MonthPeriod(2026, 1)
	feb := pos.MonthPeriod(2026, 2)
	tickets := []pos.Ticket{
		{TicketID: "a", BusinessDate: jan.Start, CustomerCount: 2, Subtotal: 1000},
		{TicketID: "b", BusinessDate: feb.Start, CustomerCount: 2, Subtotal: 3000},
	}

	values := valuesFor(&kpi.Engine{}, tickets, periodSet{periods: []pos.Period{jan, feb}}, nil)
	if values.Sales != 2000 {
		t.Fatalf("mean sales = %f", values.Sales)
	}

	single := valuesFor(&kpi.Engine{}, tickets, periodSet{periods: []pos.Period{jan}}, nil)
	if single.Sales != 1000 {
		t.Fatalf("single-period sales = %f", single.Sales)
	}
}
