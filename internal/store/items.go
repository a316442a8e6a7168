package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"posreport/internal/pos"
)

const tsLayout = time.RFC3339

// ReplaceRawItems clears and repopulates the raw_items table in one
// transaction. Ingest is idempotent per run, so replacement is the only
// write mode.
func (s *Store) ReplaceRawItems(ctx context.Context, items []pos.RawItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin raw items tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM raw_items"); err != nil {
		return fmt.Errorf("clear raw items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO raw_items (
        ticket_id, business_date_raw, entry_ts, exit_ts, customer_count,
        subtotal, item_total, category1, category2, product_code,
        product_name, sub_menu, quantity, unit_price, base_price, source_file
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare raw item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		var basePrice sql.NullInt64
		if item.BasePriceValid {
			basePrice = sql.NullInt64{Int64: item.BasePrice, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			item.TicketID,
			item.BusinessDateRaw,
			item.EntryTS.Format(tsLayout),
			item.ExitTS.Format(tsLayout),
			item.HeaderCustomerCount,
			item.HeaderSubtotal,
			item.HeaderItemTotal,
			item.Category1,
			item.Category2,
			item.ProductCode,
			item.ProductName,
			item.SubMenu,
			item.Quantity,
			item.UnitPrice,
			basePrice,
			item.SourceFile,
		); err != nil {
			return fmt.Errorf("insert raw item %s: %w", item.TicketID, err)
		}
	}
	return tx.Commit()
}

// ListRawItems returns every raw item in insertion order.
func (s *Store) ListRawItems(ctx context.Context) ([]pos.RawItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
        ticket_id, business_date_raw, entry_ts, exit_ts, customer_count,
        subtotal, item_total, category1, category2, product_code,
        product_name, sub_menu, quantity, unit_price, base_price, source_file
    FROM raw_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query raw items: %w", err)
	}
	defer rows.Close()

	var items []pos.RawItem
	for rows.Next() {
		var item pos.RawItem
		var entry, exit string
		var basePrice sql.NullInt64
		if err := rows.Scan(
			&item.TicketID,
			&item.BusinessDateRaw,
			&entry,
			&exit,
			&item.HeaderCustomerCount,
			&item.HeaderSubtotal,
			&item.HeaderItemTotal,
			&item.Category1,
			&item.Category2,
			&item.ProductCode,
			&item.ProductName,
			&item.SubMenu,
			&item.Quantity,
			&item.UnitPrice,
			&basePrice,
			&item.SourceFile,
		); err != nil {
			return nil, fmt.Errorf("scan raw item: %w", err)
		}
		if item.EntryTS, err = time.Parse(tsLayout, entry); err != nil {
			return nil, fmt.Errorf("parse entry_ts %q: %w", entry, err)
		}
		if item.ExitTS, err = time.Parse(tsLayout, exit); err != nil {
			return nil, fmt.Errorf("parse exit_ts %q: %w", exit, err)
		}
		if basePrice.Valid {
			item.BasePrice = basePrice.Int64
			item.BasePriceValid = true
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
