package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"posreport/internal/pipeline"
	"posreport/internal/pos"
	"posreport/internal/store"
	"posreport/internal/testsupport"
)

func TestOpenCreatesAndReopensSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	first, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("path = %q", first.Path())
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	second.Close()
}

func TestRawItemsRoundTrip(t *testing.T) {
	snapshot := testsupport.MustOpenStore(t)
	ctx := context.Background()

	entry := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	items := []pos.RawItem{
		{
			TicketID:            "1001",
			BusinessDateRaw:     "2026/01/10",
			EntryTS:             entry,
			ExitTS:              entry.Add(45 * time.Minute),
			HeaderCustomerCount: 2,
			HeaderSubtotal:      3000,
			HeaderItemTotal:     3000,
			Category1:           "EAT IN",
			ProductCode:         "5001",
			ProductName:         "カレーライス",
			Quantity:            1,
			UnitPrice:           1200,
			BasePrice:           1100,
			BasePriceValid:      true,
			SourceFile:          "sales.csv",
		},
		{
			TicketID:   "1002",
			EntryTS:    entry,
			ExitTS:     entry.Add(10 * time.Minute),
			SourceFile: "sales.csv",
		},
	}

	if err := snapshot.ReplaceRawItems(ctx, items); err != nil {
		t.Fatalf("ReplaceRawItems: %v", err)
	}
	got, err := snapshot.ListRawItems(ctx)
	if err != nil {
		t.Fatalf("ListRawItems: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items", len(got))
	}
	if got[0].ProductName != "カレーライス" || got[0].BasePrice != 1100 || !got[0].BasePriceValid {
		t.Fatalf("first item mangled: %+v", got[0])
	}
	if got[1].BasePriceValid {
		t.Fatal("absent base price must stay invalid, not zero")
	}
	if !got[0].EntryTS.Equal(entry) {
		t.Fatalf("entry ts = %v", got[0].EntryTS)
	}

	// Replacement clears earlier rows.
	if err := snapshot.ReplaceRawItems(ctx, items[:1]); err != nil {
		t.Fatalf("second ReplaceRawItems: %v", err)
	}
	got, _ = snapshot.ListRawItems(ctx)
	if len(got) != 1 {
		t.Fatalf("replace kept stale rows: %d", len(got))
	}
}

func TestTicketsRoundTrip(t *testing.T) {
	snapshot := testsupport.MustOpenStore(t)
	ctx := context.Background()

	entry := time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC)
	tickets := []pos.Ticket{{
		TicketID:           "1001",
		BusinessDate:       time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Weekday:            time.Saturday,
		EntryTS:            entry,
		ExitTS:             entry.Add(time.Hour),
		CustomerCount:      4,
		Subtotal:           8000,
		ItemTotal:          8000,
		Category1:          "EAT IN",
		ProductCodes:       []string{"5001", "5002"},
		Daypart:            pos.DaypartDinner,
		AdjustedHour:       19,
		DurationMinutes:    60,
		RawDurationMinutes: 60,
	}}

	if err := snapshot.ReplaceTickets(ctx, tickets); err != nil {
		t.Fatalf("ReplaceTickets: %v", err)
	}
	got, err := snapshot.ListTickets(ctx)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tickets", len(got))
	}
	round := got[0]
	if round.Daypart != pos.DaypartDinner || round.AdjustedHour != 19 {
		t.Fatalf("daypart fields mangled: %+v", round)
	}
	if len(round.ProductCodes) != 2 || round.ProductCodes[0] != "5001" {
		t.Fatalf("product codes = %v", round.ProductCodes)
	}
	if !round.BusinessDate.Equal(tickets[0].BusinessDate) {
		t.Fatalf("business date = %v", round.BusinessDate)
	}

	n, err := snapshot.TicketCount(ctx)
	if err != nil || n != 1 {
		t.Fatalf("TicketCount = %d, %v", n, err)
	}
}

func TestWarningsAppend(t *testing.T) {
	snapshot := testsupport.MustOpenStore(t)
	ctx := context.Background()

	batch1 := []pipeline.Warning{{File: "a.csv", Row: 4, Column: "subtotal", Value: "abc", Reason: "unparseable numeric"}}
	batch2 := []pipeline.Warning{{File: "b.csv", Reason: "undecodable file"}}

	if err := snapshot.AppendWarnings(ctx, batch1); err != nil {
		t.Fatalf("AppendWarnings: %v", err)
	}
	if err := snapshot.AppendWarnings(ctx, batch2); err != nil {
		t.Fatalf("AppendWarnings: %v", err)
	}

	got, err := snapshot.ListWarnings(ctx)
	if err != nil {
		t.Fatalf("ListWarnings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d warnings, want append semantics", len(got))
	}
	if got[0].Column != "subtotal" || got[0].Row != 4 {
		t.Fatalf("first warning mangled: %+v", got[0])
	}
}
