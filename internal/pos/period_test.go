package pos_test

import (
	"testing"
	"time"

	"posreport/internal/pos"
)

func TestParsePeriodMonth(t *testing.T) {
	p, err := pos.ParsePeriod("2026-01")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if got := p.Start.Format(time.DateOnly); got != "2026-01-01" {
		t.Fatalf("start = %s, want 2026-01-01", got)
	}
	if got := p.End.Format(time.DateOnly); got != "2026-02-01" {
		t.Fatalf("end = %s, want 2026-02-01", got)
	}
	if p.Label != "2026-01" {
		t.Fatalf("label = %q", p.Label)
	}
}

func TestParsePeriodISOWeek(t *testing.T) {
	p, err := pos.ParsePeriod("2026-W04")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if got := p.Start.Format(time.DateOnly); got != "2026-01-19" {
		t.Fatalf("start = %s, want 2026-01-19 (Monday of ISO week 4)", got)
	}
	if got := p.End.Format(time.DateOnly); got != "2026-01-26" {
		t.Fatalf("end = %s, want 2026-01-26", got)
	}
	if wd := p.Start.Weekday(); wd != time.Monday {
		t.Fatalf("week starts on %s, want Monday", wd)
	}
}

func TestParsePeriodRange(t *testing.T) {
	p, err := pos.ParsePeriod("2026-01-05..2026-02-01")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if got := p.Start.Format(time.DateOnly); got != "2026-01-05" {
		t.Fatalf("start = %s", got)
	}
	if got := p.End.Format(time.DateOnly); got != "2026-02-01" {
		t.Fatalf("end = %s", got)
	}
}

func TestParsePeriodRejectsMalformedInput(t *testing.T) {
	// 2025 has 52 ISO weeks, so 2025-W53 does not exist.
	for _, arg := range []string{
		"", "2026", "2026-13", "2026-W54", "2026-W0", "2025-W53",
		"2026-02-01..2026-01-05", "2026-01-05..2026-01-05", "january",
	} {
		if _, err := pos.ParsePeriod(arg); err == nil {
			t.Fatalf("ParsePeriod(%q) succeeded, want error", arg)
		}
	}
}

func TestPeriodContainsIsHalfOpen(t *testing.T) {
	p, err := pos.ParsePeriod("2026-01")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if !p.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("start date should be contained")
	}
	if !p.Contains(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("last day should be contained")
	}
	if p.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("end date should be excluded")
	}
}

func TestPreviousStepsBackOneGranule(t *testing.T) {
	month, _ := pos.ParsePeriod("2026-01")
	if got := month.Previous().Label; got != "2025-12" {
		t.Fatalf("previous month = %s, want 2025-12", got)
	}

	week, _ := pos.ParsePeriod("2026-W01")
	prev := week.Previous()
	if got := prev.Label; got != "2025-W52" {
		t.Fatalf("previous week = %s, want 2025-W52", got)
	}

	rng, _ := pos.ParsePeriod("2026-01-15..2026-01-22")
	prev = rng.Previous()
	if got := prev.Start.Format(time.DateOnly); got != "2026-01-08" {
		t.Fatalf("previous range start = %s, want 2026-01-08", got)
	}
	if got := prev.End.Format(time.DateOnly); got != "2026-01-15" {
		t.Fatalf("previous range end = %s, want 2026-01-15", got)
	}
}

func TestYearAgoKeepsGranularity(t *testing.T) {
	month, _ := pos.ParsePeriod("2026-03")
	if got := month.YearAgo().Label; got != "2025-03" {
		t.Fatalf("year-ago month = %s, want 2025-03", got)
	}

	week, _ := pos.ParsePeriod("2026-W10")
	if got := week.YearAgo().Label; got != "2025-W10" {
		t.Fatalf("year-ago week = %s, want 2025-W10", got)
	}
}

func TestYearAgoClampsLongISOYears(t *testing.T) {
	if got := pos.ISOWeeks(2026); got != 53 {
		t.Fatalf("2026 has %d ISO weeks, want 53", got)
	}
	if got := pos.ISOWeeks(2025); got != 52 {
		t.Fatalf("2025 has %d ISO weeks, want 52", got)
	}

	week, err := pos.ParsePeriod("2026-W53")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if got := week.Start.Format(time.DateOnly); got != "2026-12-28" {
		t.Fatalf("W53 start = %s, want 2026-12-28", got)
	}
	if got := week.YearAgo().Label; got != "2025-W52" {
		t.Fatalf("year-ago of a long year's W53 = %s, want 2025-W52", got)
	}
}
