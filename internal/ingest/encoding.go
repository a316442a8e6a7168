package ingest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeFile reads a vendor export and decodes it using the first probe
// candidate that decodes every byte without a replacement character. The
// chosen encoding name is returned for diagnostics.
func DecodeFile(path string, probeOrder []string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	// A UTF-8 BOM settles the question outright; the pipeline's own CSV
	// artifacts carry one.
	if bytes.HasPrefix(raw, utf8BOM) {
		trimmed := raw[len(utf8BOM):]
		if utf8.Valid(trimmed) {
			return string(trimmed), "utf-8", nil
		}
	}

	var tried []string
	for _, name := range probeOrder {
		decoded, ok := decodeWith(name, raw)
		if ok {
			return decoded, name, nil
		}
		tried = append(tried, name)
	}
	return "", "", fmt.Errorf("no candidate encoding decodes %s cleanly (tried %s)", path, strings.Join(tried, ", "))
}

func decodeWith(name string, raw []byte) (string, bool) {
	switch name {
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	case "shift_jis", "sjis", "cp932":
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
		if err != nil {
			return "", false
		}
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			return "", false
		}
		return string(decoded), true
	default:
		return "", false
	}
}
