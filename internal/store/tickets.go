package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"posreport/internal/pos"
)

const dateLayout = time.DateOnly

// ReplaceTickets clears and repopulates the tickets table.
func (s *Store) ReplaceTickets(ctx context.Context, tickets []pos.Ticket) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tickets tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tickets"); err != nil {
		return fmt.Errorf("clear tickets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tickets (
        ticket_id, business_date, weekday, entry_ts, exit_ts, customer_count,
        subtotal, item_total, category1, product_codes, daypart,
        adjusted_hour, duration_minutes, raw_duration_minutes, duration_clipped
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare ticket insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tickets {
		clipped := 0
		if t.DurationClipped {
			clipped = 1
		}
		if _, err := stmt.ExecContext(ctx,
			t.TicketID,
			t.BusinessDate.Format(dateLayout),
			int(t.Weekday),
			t.EntryTS.Format(tsLayout),
			t.ExitTS.Format(tsLayout),
			t.CustomerCount,
			t.Subtotal,
			t.ItemTotal,
			t.Category1,
			strings.Join(t.ProductCodes, ","),
			string(t.Daypart),
			t.AdjustedHour,
			t.DurationMinutes,
			t.RawDurationMinutes,
			clipped,
		); err != nil {
			return fmt.Errorf("insert ticket %s: %w", t.TicketID, err)
		}
	}
	return tx.Commit()
}

// ListTickets returns every ticket ordered by business date then entry.
func (s *Store) ListTickets(ctx context.Context) ([]pos.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
        ticket_id, business_date, weekday, entry_ts, exit_ts, customer_count,
        subtotal, item_total, category1, product_codes, daypart,
        adjusted_hour, duration_minutes, raw_duration_minutes, duration_clipped
    FROM tickets ORDER BY business_date, entry_ts`)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []pos.Ticket
	for rows.Next() {
		var t pos.Ticket
		var businessDate, entry, exit, codes, daypart string
		var weekday, clipped int
		if err := rows.Scan(
			&t.TicketID,
			&businessDate,
			&weekday,
			&entry,
			&exit,
			&t.CustomerCount,
			&t.Subtotal,
			&t.ItemTotal,
			&t.Category1,
			&codes,
			&daypart,
			&t.AdjustedHour,
			&t.DurationMinutes,
			&t.RawDurationMinutes,
			&clipped,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		if t.BusinessDate, err = time.Parse(dateLayout, businessDate); err != nil {
			return nil, fmt.Errorf("parse business_date %q: %w", businessDate, err)
		}
		if t.EntryTS, err = time.Parse(tsLayout, entry); err != nil {
			return nil, fmt.Errorf("parse entry_ts %q: %w", entry, err)
		}
		if t.ExitTS, err = time.Parse(tsLayout, exit); err != nil {
			return nil, fmt.Errorf("parse exit_ts %q: %w", exit, err)
		}
		t.Weekday = time.Weekday(weekday)
		t.Daypart = pos.Daypart(daypart)
		t.DurationClipped = clipped != 0
		if codes != "" {
			t.ProductCodes = strings.Split(codes, ",")
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// TicketCount returns the number of stored tickets.
func (s *Store) TicketCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM tickets").Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}
