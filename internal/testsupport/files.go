package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// WriteUTF8 writes a vendor CSV fixture in plain UTF-8.
func WriteUTF8(t testing.TB, path, content string) {
	t.Helper()
	writeFixture(t, path, []byte(content))
}

// WriteUTF8BOM writes a vendor CSV fixture with a UTF-8 byte order mark.
func WriteUTF8BOM(t testing.TB, path, content string) {
	t.Helper()
	writeFixture(t, path, append([]byte{0xEF, 0xBB, 0xBF}, content...))
}

// WriteShiftJIS encodes content as Shift_JIS and writes it, mimicking the
// vendor export encoding.
func WriteShiftJIS(t testing.TB, path, content string) {
	t.Helper()

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("encode shift_jis: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close shift_jis writer: %v", err)
	}
	writeFixture(t, path, buf.Bytes())
}

func writeFixture(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
