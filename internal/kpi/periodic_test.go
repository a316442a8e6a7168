package kpi_test

import (
	"testing"

	"posreport/internal/kpi"
	"posreport/internal/pos"
)

func TestMonthlySplitsDayparts(t *testing.T) {
	lunch := ticketOn(day(2026, 1, 5), 2, 3000)
	dinner := ticketOn(day(2026, 1, 5), 4, 9000)
	dinner.Daypart = pos.DaypartDinner

	periods := (&kpi.Engine{}).Monthly([]pos.Ticket{lunch, dinner})
	if len(periods) != 1 {
		t.Fatalf("got %d periods", len(periods))
	}
	rows := periods[0].Rows
	if len(rows) != 3 {
		t.Fatalf("got %d daypart rows", len(rows))
	}
	if rows[0].Daypart != "Total" || rows[0].Aggregate.Sales != 12000 {
		t.Fatalf("total row wrong: %+v", rows[0])
	}
	if rows[1].Daypart != "Lunch" || rows[1].Aggregate.Sales != 3000 {
		t.Fatalf("lunch row wrong: %+v", rows[1])
	}
	if rows[2].Daypart != "Dinner" || rows[2].Aggregate.Sales != 9000 {
		t.Fatalf("dinner row wrong: %+v", rows[2])
	}
}

func TestMonthlyOrdersPeriodsChronologically(t *testing.T) {
	tickets := []pos.Ticket{
		ticketOn(day(2026, 3, 1), 2, 1000),
		ticketOn(day(2025, 12, 1), 2, 1000),
		ticketOn(day(2026, 1, 15), 2, 1000),
	}
	periods := (&kpi.Engine{}).Monthly(tickets)
	var labels []string
	for _, pr := range periods {
		labels = append(labels, pr.Period.Label)
	}
	want := []string{"2025-12", "2026-01", "2026-03"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}
}

func TestWeeklyUsesISOWeeks(t *testing.T) {
	// 2026-01-01 (Thursday) falls in ISO week 2026-W01.
	periods := (&kpi.Engine{}).Weekly([]pos.Ticket{ticketOn(day(2026, 1, 1), 2, 1000)})
	if len(periods) != 1 {
		t.Fatalf("got %d periods", len(periods))
	}
	if periods[0].Period.Label != "2026-W01" {
		t.Fatalf("label = %s, want 2026-W01", periods[0].Period.Label)
	}
}

func TestTrailingPeriodsOldestFirst(t *testing.T) {
	target, _ := pos.ParsePeriod("2026-W10")
	trailing := kpi.TrailingPeriods(target, 4)
	if len(trailing) != 4 {
		t.Fatalf("got %d periods", len(trailing))
	}
	want := []string{"2026-W06", "2026-W07", "2026-W08", "2026-W09"}
	for i, p := range trailing {
		if p.Label != want[i] {
			t.Fatalf("trailing[%d] = %s, want %s", i, p.Label, want[i])
		}
	}
}

func TestTrailingPeriodsAcrossMonths(t *testing.T) {
	target, _ := pos.ParsePeriod("2026-01")
	trailing := kpi.TrailingPeriods(target, 2)
	if trailing[0].Label != "2025-11" || trailing[1].Label != "2025-12" {
		t.Fatalf("trailing = %v", []string{trailing[0].Label, trailing[1].Label})
	}
}
