package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// OutputPath derives a sibling output location: a/b/receipt.json with
// suffix "_parsed.json" becomes a/b/receipt_parsed.json.
func OutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// MarshalDocument renders the output document as two-space indented JSON
// with a trailing newline. The same input always yields the same bytes.
func MarshalDocument(doc models.ParsedDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode parsed document: %w", err)
	}
	return buf.Bytes(), nil
}
