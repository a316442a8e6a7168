package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// emDash replaces NaN in ratio and percent columns so spreadsheet users
// see "no comparison" rather than an empty cell.
const emDash = "—"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeCSV writes header and rows to path as UTF-8 with BOM.
func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatYen(v int64) string {
	return strconv.FormatInt(v, 10)
}

// formatFloat renders a derived KPI with one decimal; NaN becomes empty
// per the CSV conventions.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatRatio renders a comparison ratio or percent; NaN becomes an
// em-dash.
func formatRatio(v float64) string {
	if math.IsNaN(v) {
		return emDash
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
