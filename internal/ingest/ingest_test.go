package ingest_test

import (
	"context"
	"path/filepath"
	"testing"

	"posreport/internal/ingest"
	"posreport/internal/logging"
	"posreport/internal/pipeline"
	"posreport/internal/testsupport"
)

const vendorExport = `店舗売上データ
期間: 2026/01/01 - 2026/01/31
伝票番号,営業日,入店日時,退店日時,客数,小計,商品計,分類1,商品コード,商品名,数量,単価,order_status,sign
1001,2026/01/10,2026/01/10 12:00:00,2026/01/10 12:45:00,2,3000,3000,EAT IN,5001,カレーライス,1,1200,,
1001,2026/01/10,2026/01/10 12:00:00,2026/01/10 12:45:00,2,3000,3000,EAT IN,5002,コーヒー,2,400,,
1002,2026/01/10,2026/01/10 12:10:00,2026/01/10 12:40:00,1,1200,1200,EAT IN,5001,カレーライス,1,1200,取消,
1003,2026/01/10,2026/01/10 13:00:00,2026/01/10 13:30:00,2,-3000,-3000,EAT IN,5001,カレーライス,1,1200,,-1
1004,2026/01/10,2026/01/10 18:00:00,2026/01/10 19:00:00,4,8000,8000,EAT IN,5003,定食,1,0,,
1005,2026/01/10,2026/01/10 19:00:00,bogus,2,4000,4000,EAT IN,5001,カレーライス,1,1200,,
`

func runIngest(t *testing.T, setup func(inputDir string)) (*ingest.Result, *pipeline.Collector) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	setup(cfg.Paths.InputDir)

	collector := pipeline.NewCollector(logging.NewNop())
	result, err := ingest.New(cfg, logging.NewNop(), collector).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result, collector
}

func TestRunNormalizesVendorExport(t *testing.T) {
	result, collector := runIngest(t, func(dir string) {
		testsupport.WriteShiftJIS(t, filepath.Join(dir, "sales_202601.csv"), vendorExport)
	})

	if result.FilesRead != 1 || result.FilesSkipped != 0 {
		t.Fatalf("files read/skipped = %d/%d", result.FilesRead, result.FilesSkipped)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2 surviving rows", len(result.Items))
	}

	first := result.Items[0]
	if first.TicketID != "1001" || first.HeaderCustomerCount != 2 || first.HeaderSubtotal != 3000 {
		t.Fatalf("header fields wrong: %+v", first)
	}
	if first.ProductName != "カレーライス" || first.ProductCode != "5001" {
		t.Fatalf("product fields wrong: %+v", first)
	}
	if first.SourceFile != "sales_202601.csv" {
		t.Fatalf("source file = %q", first.SourceFile)
	}

	reasons := map[string]int{}
	for _, rc := range collector.ReasonCounts() {
		reasons[rc.Reason] = rc.Count
	}
	if reasons[ingest.ReasonCancelled] != 1 {
		t.Fatalf("cancelled drops = %d", reasons[ingest.ReasonCancelled])
	}
	if reasons[ingest.ReasonReversal] != 1 {
		t.Fatalf("reversal drops = %d", reasons[ingest.ReasonReversal])
	}
	if reasons[ingest.ReasonNonPositivePrice] != 1 {
		t.Fatalf("zero-price drops = %d", reasons[ingest.ReasonNonPositivePrice])
	}
	if reasons[ingest.ReasonBadTimestamp] != 1 {
		t.Fatalf("bad timestamp drops = %d", reasons[ingest.ReasonBadTimestamp])
	}
}

func TestRunReadsUTF8BOMFiles(t *testing.T) {
	content := "伝票番号,入店日時,退店日時,客数,小計\n" +
		"2001,2026/01/10 12:00:00,2026/01/10 12:30:00,3,4500\n"
	result, collector := runIngest(t, func(dir string) {
		testsupport.WriteUTF8BOM(t, filepath.Join(dir, "export.csv"), content)
	})

	if result.FilesRead != 1 {
		t.Fatalf("files read = %d", result.FilesRead)
	}
	if collector.Count() != 0 {
		t.Fatalf("unexpected warnings: %v", collector.Warnings())
	}
}

func TestRunSkipsOwnOutputsSilently(t *testing.T) {
	good := "伝票番号,入店日時,退店日時,客数,小計\n" +
		"2001,2026/01/10 12:00:00,2026/01/10 12:30:00,3,4500\n"
	result, collector := runIngest(t, func(dir string) {
		testsupport.WriteUTF8(t, filepath.Join(dir, "sales.csv"), good)
		testsupport.WriteUTF8(t, filepath.Join(dir, "output_summary_20260215.csv"), "whatever\n")
		testsupport.WriteUTF8(t, filepath.Join(dir, "merged.csv"), "whatever\n")
		testsupport.WriteUTF8(t, filepath.Join(dir, "notes.txt"), "not a csv\n")
	})

	if result.FilesRead != 1 {
		t.Fatalf("files read = %d, want 1", result.FilesRead)
	}
	if result.FilesSkipped != 0 {
		t.Fatalf("excluded files must not count as skipped: %d", result.FilesSkipped)
	}
	if collector.Count() != 0 {
		t.Fatalf("exclusion must not warn: %v", collector.Warnings())
	}
}

func TestRunSkipsUndecodableFileWithWarning(t *testing.T) {
	good := "伝票番号,入店日時,退店日時,客数,小計\n" +
		"2001,2026/01/10 12:00:00,2026/01/10 12:30:00,3,4500\n"
	result, collector := runIngest(t, func(dir string) {
		testsupport.WriteUTF8(t, filepath.Join(dir, "sales.csv"), good)
		testsupport.WriteUTF8(t, filepath.Join(dir, "corrupt.csv"), string([]byte{0x80, 0xFF, 0xFE}))
	})

	if result.FilesRead != 1 || result.FilesSkipped != 1 {
		t.Fatalf("files read/skipped = %d/%d", result.FilesRead, result.FilesSkipped)
	}
	found := false
	for _, w := range collector.Warnings() {
		if w.File == "corrupt.csv" && w.Reason == ingest.ReasonBadEncoding {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing encoding warning: %v", collector.Warnings())
	}
}

func TestRunFailsWhenInputEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	collector := pipeline.NewCollector(logging.NewNop())

	_, err := ingest.New(cfg, logging.NewNop(), collector).Run(context.Background())
	if err == nil {
		t.Fatal("expected error for empty input directory")
	}
	if got := pipeline.ExitCode(err); got != pipeline.ExitNoInput {
		t.Fatalf("exit code = %d, want %d", got, pipeline.ExitNoInput)
	}
}
