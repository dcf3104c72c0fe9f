package parser

import (
	"strings"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// ClassifyTransaction returns the first category whose keywords occur in
// the text, or TypeUnknown.
func ClassifyTransaction(text string, categories []Category) models.TransactionType {
	lower := strings.ToLower(text)
	for _, c := range categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Type
			}
		}
	}
	return models.TypeUnknown
}
