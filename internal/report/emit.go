package report

import (
	"fmt"
	"strings"
	"time"

	"posreport/internal/kpi"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
	"posreport/internal/runfs"
)

// EatInCategory is the category1 value selecting dine-in rows for the
// transformed intermediate table.
const EatInCategory = "EAT IN"

// Emitter writes artifacts into a run directory.
type Emitter struct {
	Run *runfs.Run
}

var mergedHeader = []string{
	"ticket_id", "business_date", "entry_ts", "exit_ts", "customer_count",
	"subtotal", "item_total", "category1", "category2", "product_code",
	"product_name", "sub_menu", "quantity", "unit_price", "base_price",
	"source_file",
}

// EmitMerged writes the concatenated canonical rows.
func (e Emitter) EmitMerged(items []pos.RawItem) error {
	return writeCSV(e.Run.IntermediatePath("merged.csv"), mergedHeader, rawRows(items))
}

// EmitEatIn writes the canonical rows restricted to dine-in.
func (e Emitter) EmitEatIn(items []pos.RawItem) error {
	filtered := make([]pos.RawItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Category1), EatInCategory) {
			filtered = append(filtered, item)
		}
	}
	return writeCSV(e.Run.IntermediatePath("transformed_eatin.csv"), mergedHeader, rawRows(filtered))
}

func rawRows(items []pos.RawItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		basePrice := ""
		if item.BasePriceValid {
			basePrice = formatYen(item.BasePrice)
		}
		rows = append(rows, []string{
			item.TicketID,
			item.BusinessDateRaw,
			item.EntryTS.Format(time.RFC3339),
			item.ExitTS.Format(time.RFC3339),
			formatInt(item.HeaderCustomerCount),
			formatYen(item.HeaderSubtotal),
			formatYen(item.HeaderItemTotal),
			item.Category1,
			item.Category2,
			item.ProductCode,
			item.ProductName,
			item.SubMenu,
			formatInt(item.Quantity),
			formatYen(item.UnitPrice),
			basePrice,
			item.SourceFile,
		})
	}
	return rows
}

// EmitWarnings writes the run's warnings journal.
func (e Emitter) EmitWarnings(warnings []pipeline.Warning) error {
	header := []string{"file", "row", "column", "value", "reason"}
	rows := make([][]string, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, []string{w.File, formatInt(w.Row), w.Column, w.Value, w.Reason})
	}
	return writeCSV(e.Run.IntermediatePath("warnings.csv"), header, rows)
}

// EmitTickets writes the collapsed ticket table.
func (e Emitter) EmitTickets(tickets []pos.Ticket) error {
	header := []string{
		"ticket_id", "business_date", "weekday", "entry_ts", "exit_ts",
		"customer_count", "subtotal", "item_total", "category1", "daypart",
		"duration_minutes", "raw_duration_minutes", "duration_clipped",
	}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		clipped := "false"
		if t.DurationClipped {
			clipped = "true"
		}
		rows = append(rows, []string{
			t.TicketID,
			t.BusinessDate.Format(time.DateOnly),
			t.Weekday.String()[:3],
			t.EntryTS.Format(time.RFC3339),
			t.ExitTS.Format(time.RFC3339),
			formatInt(t.CustomerCount),
			formatYen(t.Subtotal),
			formatYen(t.ItemTotal),
			t.Category1,
			string(t.Daypart),
			formatInt(t.DurationMinutes),
			formatInt(t.RawDurationMinutes),
			clipped,
		})
	}
	return writeCSV(e.Run.OutputPath("tickets.csv"), header, rows)
}

var kpiColumns = []string{
	"operating_days", "ticket_count", "customer_count", "sales",
	"sales_per_day", "customers_per_day", "spend_per_customer",
}

func kpiCells(agg pos.PeriodAggregate) []string {
	return []string{
		formatInt(agg.OperatingDays),
		formatInt(agg.TicketCount),
		formatYen(agg.CustomerCount),
		formatYen(agg.Sales),
		formatFloat(agg.SalesPerDay()),
		formatFloat(agg.CustomersPerDay()),
		formatFloat(agg.SpendPerCustomer()),
	}
}

// EmitMonthly writes one row per (year, month, daypart).
func (e Emitter) EmitMonthly(periods []kpi.PeriodRows) error {
	header := append([]string{"year", "month", "daypart"}, kpiColumns...)
	var rows [][]string
	for _, pr := range periods {
		for _, dr := range pr.Rows {
			row := []string{
				formatInt(pr.Period.Start.Year()),
				formatInt(int(pr.Period.Start.Month())),
				dr.Daypart,
			}
			rows = append(rows, append(row, kpiCells(dr.Aggregate)...))
		}
	}
	return writeCSV(e.Run.OutputPath("monthly_kpis.csv"), header, rows)
}

// EmitWeekly writes one row per (iso-year, iso-week, daypart).
func (e Emitter) EmitWeekly(periods []kpi.PeriodRows) error {
	header := append([]string{"iso_year", "iso_week", "daypart"}, kpiColumns...)
	var rows [][]string
	for _, pr := range periods {
		isoYear, isoWeek := pr.Period.Start.ISOWeek()
		for _, dr := range pr.Rows {
			row := []string{
				formatInt(isoYear),
				formatInt(isoWeek),
				dr.Daypart,
			}
			rows = append(rows, append(row, kpiCells(dr.Aggregate)...))
		}
	}
	return writeCSV(e.Run.OutputPath("weekly_kpis.csv"), header, rows)
}

// ComparisonEntry is one slice value's comparison rows.
type ComparisonEntry struct {
	SliceValue string
	Rows       []pos.ComparisonRow
}

// EmitComparison writes a difference table for one axis ("overall" when
// the comparison has no slicing).
func (e Emitter) EmitComparison(axis string, from, to string, entries []ComparisonEntry) error {
	header := []string{"slice", "metric", from, to, "diff", "ratio", "pct_change"}
	var rows [][]string
	for _, entry := range entries {
		for _, r := range entry.Rows {
			rows = append(rows, []string{
				entry.SliceValue,
				r.Metric,
				formatFloat(r.From),
				formatFloat(r.To),
				formatFloat(r.Diff),
				formatRatio(r.Ratio),
				formatRatio(r.PctChange),
			})
		}
	}
	name := fmt.Sprintf("comparison_%s.csv", sanitizeLabel(axis))
	return writeCSV(e.Run.OutputPath(name), header, rows)
}

// EmitDecomposition writes the Δsales attribution table.
func (e Emitter) EmitDecomposition(label string, decomps []pos.FactorDecomposition) error {
	header := []string{"slice", "delta_sales", "customer_contribution", "spend_contribution", "residual_sales"}
	rows := make([][]string, 0, len(decomps))
	for _, d := range decomps {
		rows = append(rows, []string{
			d.Label,
			formatFloat(d.DeltaSales),
			formatFloat(d.CustomerContribution),
			formatFloat(d.SpendContribution),
			formatFloat(d.ResidualSales),
		})
	}
	name := fmt.Sprintf("factor_decomposition_%s.csv", sanitizeLabel(label))
	return writeCSV(e.Run.OutputPath(name), header, rows)
}

// EmitOccupancy writes the 10-minute occupancy series. Slot starts are
// rendered on the operating-day clock, so a bucket past midnight shows as
// 24+ ("25:30") under its business date.
func (e Emitter) EmitOccupancy(slots []pos.OccupancySlot) error {
	header := []string{"business_date", "slot_start", "occupants"}
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, []string{
			s.BusinessDate.Format(time.DateOnly),
			SlotLabel(s),
			formatInt(s.Occupants),
		})
	}
	return writeCSV(e.Run.OutputPath("occupancy_10min.csv"), header, rows)
}

// SlotLabel formats a slot start on the operating-day clock.
func SlotLabel(s pos.OccupancySlot) string {
	hour := s.SlotStart.Hour()
	if dayDelta := int(pos.DateOnly(s.SlotStart).Sub(s.BusinessDate).Hours() / 24); dayDelta > 0 {
		hour += 24 * dayDelta
	}
	return fmt.Sprintf("%02d:%02d", hour, s.SlotStart.Minute())
}

// EmitRunInfo writes run metadata. This is the only artifact carrying the
// run timestamp, keeping the data tables byte-identical across reruns.
func (e Emitter) EmitRunInfo(runID, storeName string, createdAt time.Time) error {
	header := []string{"run_id", "store", "created_at"}
	rows := [][]string{{runID, storeName, createdAt.Format(time.RFC3339)}}
	return writeCSV(e.Run.OutputPath("run_info.csv"), header, rows)
}

func sanitizeLabel(label string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, label)
	return strings.Trim(mapped, "_")
}
