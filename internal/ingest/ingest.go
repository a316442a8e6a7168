package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"posreport/internal/config"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
)

// Row-drop and file-skip reasons surfaced in the warnings journal.
const (
	ReasonCancelled        = "cancelled"
	ReasonReversal         = "reversal"
	ReasonNonPositivePrice = "non-positive unit_price"
	ReasonNonPositiveQty   = "non-positive quantity"
	ReasonMissingTicketID  = "missing ticket_id"
	ReasonBadTimestamp     = "unparseable timestamp"
	ReasonEntryAfterExit   = "entry after exit"
	ReasonBadNumeric       = "unparseable numeric"
	ReasonBadEncoding      = "undecodable file"
	ReasonNoHeader         = "header not found"
	ReasonMissingColumns   = "missing required columns"
	ReasonMalformedRow     = "malformed row"
)

// Ingestor reads every vendor export in the input directory and produces
// the canonical RawItem sequence.
type Ingestor struct {
	cfg      *config.Config
	logger   *slog.Logger
	warnings *pipeline.Collector

	// Progress enables a terminal progress bar across files.
	Progress bool
}

// Result summarizes one ingest pass.
type Result struct {
	Items        []pos.RawItem
	FilesRead    int
	FilesSkipped int
}

// New returns an Ingestor wired to the given config, logger, and warnings
// collector.
func New(cfg *config.Config, logger *slog.Logger, warnings *pipeline.Collector) *Ingestor {
	return &Ingestor{cfg: cfg, logger: logger.With(slog.String("component", "ingest")), warnings: warnings}
}

// Run ingests the input directory. Files that cannot be decoded or lack
// required columns are skipped with a warning; the run fails only when the
// directory is missing or no file yields rows.
func (ing *Ingestor) Run(ctx context.Context) (*Result, error) {
	files, err := ing.listInputFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, pipeline.Wrap(pipeline.ErrInputNotFound, "ingest", "scan", fmt.Sprintf("no vendor CSV files in %s", ing.cfg.Paths.InputDir), nil)
	}

	var bar *progressbar.ProgressBar
	if ing.Progress {
		bar = progressbar.Default(int64(len(files)), "ingesting")
	}

	result := &Result{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, ok := ing.readFile(path)
		if ok {
			result.Items = append(result.Items, items...)
			result.FilesRead++
		} else {
			result.FilesSkipped++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if result.FilesRead == 0 {
		return nil, pipeline.Wrap(pipeline.ErrInputNotFound, "ingest", "read", "no input file could be read", nil)
	}

	ing.logger.Info("ingest complete",
		slog.Int("files_read", result.FilesRead),
		slog.Int("files_skipped", result.FilesSkipped),
		slog.Int("rows", len(result.Items)),
		slog.Int("warnings", ing.warnings.Count()),
	)
	return result, nil
}

func (ing *Ingestor) listInputFiles() ([]string, error) {
	entries, err := os.ReadDir(ing.cfg.Paths.InputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pipeline.Wrap(pipeline.ErrInputNotFound, "ingest", "scan", ing.cfg.Paths.InputDir, err)
		}
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		if ing.excluded(name) {
			// Own outputs re-appearing in a reused input folder; not worth
			// a warning.
			ing.logger.Debug("skipping excluded file", slog.String("file", name))
			continue
		}
		files = append(files, filepath.Join(ing.cfg.Paths.InputDir, name))
	}
	sort.Strings(files)
	return files, nil
}

func (ing *Ingestor) excluded(name string) bool {
	for _, sub := range ing.cfg.Ingest.ExclusionSubstrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

// readFile ingests one vendor export. The bool result reports whether the
// file contributed rows.
func (ing *Ingestor) readFile(path string) ([]pos.RawItem, bool) {
	base := filepath.Base(path)

	content, encoding, err := DecodeFile(path, ing.cfg.Ingest.EncodingProbeOrder)
	if err != nil {
		ing.warnings.Add(pipeline.Warning{File: base, Reason: ReasonBadEncoding, Value: err.Error()})
		return nil, false
	}

	lines := splitLines(content)
	headerIdx, err := findHeader(lines, ing.cfg.Ingest.HeaderMarker, ing.cfg.Ingest.HeaderOffset, ing.cfg.Ingest.MetadataMaxLines)
	if err != nil {
		ing.warnings.Add(pipeline.Warning{File: base, Reason: ReasonNoHeader, Value: err.Error()})
		return nil, false
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		ing.warnings.Add(pipeline.Warning{File: base, Reason: ReasonNoHeader, Value: err.Error()})
		return nil, false
	}

	idx := indexColumns(header, ing.cfg.Ingest.ColumnMap)
	if missing := idx.missingRequired(); len(missing) > 0 {
		ing.warnings.Add(pipeline.Warning{
			File:   base,
			Column: strings.Join(missing, ","),
			Reason: ReasonMissingColumns,
		})
		return nil, false
	}

	statusIdx := rawColumnIndex(header, ing.cfg.Ingest.StatusColumn)
	signIdx := rawColumnIndex(header, ing.cfg.Ingest.SignColumn)

	var items []pos.RawItem
	row := headerIdx + 1
	for {
		row++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ing.warnings.Add(pipeline.Warning{File: base, Row: row, Reason: ReasonMalformedRow, Value: err.Error()})
			continue
		}
		if item, ok := ing.parseRow(base, row, record, idx, statusIdx, signIdx); ok {
			items = append(items, item)
		}
	}

	ing.logger.Info("decoded file",
		slog.String("file", base),
		slog.String("encoding", encoding),
		slog.Int("rows", len(items)),
	)
	return items, true
}

func rawColumnIndex(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

func (ing *Ingestor) parseRow(file string, row int, record []string, idx columnIndex, statusIdx, signIdx int) (pos.RawItem, bool) {
	warn := func(column, value, reason string) {
		ing.warnings.Add(pipeline.Warning{File: file, Row: row, Column: column, Value: value, Reason: reason})
	}

	if statusIdx >= 0 && statusIdx < len(record) {
		status := strings.TrimSpace(record[statusIdx])
		for _, cancel := range ing.cfg.Ingest.CancelValues {
			if strings.EqualFold(status, cancel) {
				warn(ing.cfg.Ingest.StatusColumn, status, ReasonCancelled)
				return pos.RawItem{}, false
			}
		}
	}
	if signIdx >= 0 && signIdx < len(record) {
		if isReversalSign(record[signIdx]) {
			warn(ing.cfg.Ingest.SignColumn, record[signIdx], ReasonReversal)
			return pos.RawItem{}, false
		}
	}

	ticketID := idx.value(record, ColTicketID)
	if ticketID == "" {
		warn(ColTicketID, "", ReasonMissingTicketID)
		return pos.RawItem{}, false
	}

	loc := ing.cfg.Location()
	entry, ok := parseTimestamp(idx.value(record, ColEntryTS), loc)
	if !ok {
		warn(ColEntryTS, idx.value(record, ColEntryTS), ReasonBadTimestamp)
		return pos.RawItem{}, false
	}
	exit, ok := parseTimestamp(idx.value(record, ColExitTS), loc)
	if !ok {
		warn(ColExitTS, idx.value(record, ColExitTS), ReasonBadTimestamp)
		return pos.RawItem{}, false
	}
	if exit.Before(entry) {
		warn(ColExitTS, idx.value(record, ColExitTS), ReasonEntryAfterExit)
		return pos.RawItem{}, false
	}

	customers, ok := parseCount(idx.value(record, ColCustomerCount))
	if !ok {
		warn(ColCustomerCount, idx.value(record, ColCustomerCount), ReasonBadNumeric)
		return pos.RawItem{}, false
	}
	subtotal, ok := parseYen(idx.value(record, ColSubtotal))
	if !ok {
		warn(ColSubtotal, idx.value(record, ColSubtotal), ReasonBadNumeric)
		return pos.RawItem{}, false
	}

	quantity := 1
	if idx.has(ColQuantity) {
		quantity, ok = parseCount(idx.value(record, ColQuantity))
		if !ok {
			warn(ColQuantity, idx.value(record, ColQuantity), ReasonBadNumeric)
			return pos.RawItem{}, false
		}
		if quantity <= 0 {
			warn(ColQuantity, strconv.Itoa(quantity), ReasonNonPositiveQty)
			return pos.RawItem{}, false
		}
	}

	unitPrice := int64(0)
	if idx.has(ColUnitPrice) {
		unitPrice, ok = parseYen(idx.value(record, ColUnitPrice))
		if !ok {
			warn(ColUnitPrice, idx.value(record, ColUnitPrice), ReasonBadNumeric)
			return pos.RawItem{}, false
		}
		if unitPrice <= 0 {
			warn(ColUnitPrice, strconv.FormatInt(unitPrice, 10), ReasonNonPositivePrice)
			return pos.RawItem{}, false
		}
	}

	itemTotal, _ := parseYen(idx.value(record, ColItemTotal))

	item := pos.RawItem{
		TicketID:            ticketID,
		BusinessDateRaw:     idx.value(record, ColBusinessDate),
		EntryTS:             entry,
		ExitTS:              exit,
		HeaderCustomerCount: customers,
		HeaderSubtotal:      subtotal,
		HeaderItemTotal:     itemTotal,
		Category1:           idx.value(record, ColCategory1),
		Category2:           idx.value(record, ColCategory2),
		ProductCode:         idx.value(record, ColProductCode),
		ProductName:         productName(record, idx),
		SubMenu:             idx.value(record, ColSubMenu),
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		SourceFile:          file,
	}
	if idx.has(ColBasePrice) {
		if base, ok := parseYen(idx.value(record, ColBasePrice)); ok {
			item.BasePrice = base
			item.BasePriceValid = true
		}
	}
	return item, true
}

// productName prefers the explicit name column, falling back to the
// composite "code name" field some vendors export.
func productName(record []string, idx columnIndex) string {
	if name := idx.value(record, ColProductName); name != "" {
		return name
	}
	composite := idx.value(record, ColProductComposite)
	if composite == "" {
		return ""
	}
	if _, name, ok := strings.Cut(composite, " "); ok {
		return strings.TrimSpace(name)
	}
	return composite
}

func isReversalSign(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "-", "−", "-1":
		return true
	}
	if value, err := strconv.ParseInt(trimmed, 10, 64); err == nil && value < 0 {
		return true
	}
	return false
}
