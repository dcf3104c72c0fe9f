package writer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 60)
)

// WriteReport writes the human-readable summary of a parsed document.
func WriteReport(out io.Writer, doc models.ParsedDocument) error {
	var b bytes.Buffer
	txn := doc.Transaction

	fmt.Fprintf(&b, "\n%s\nTRANSACTION ANALYSIS RESULTS\n%s\n", heavyRule, heavyRule)
	fmt.Fprintf(&b, "\nTransaction Type: %s\n", txn.TransactionType)

	if len(txn.Banks) > 0 {
		fmt.Fprintf(&b, "\nDetected Banks: %s\n", strings.Join(txn.Banks, ", "))
	}
	if txn.Merchant != nil {
		fmt.Fprintf(&b, "\nMerchant: %s\n", *txn.Merchant)
	}
	if len(txn.Amounts) > 0 {
		b.WriteString("\nAmounts Detected:\n")
		for _, a := range txn.Amounts {
			fmt.Fprintf(&b, "  %s (%s)\n", a.DisplayText, a.Currency)
		}
	}
	writeList(&b, "Dates", txn.Dates, "")
	if txn.Time != nil {
		fmt.Fprintf(&b, "\nTime: %s\n", *txn.Time)
	}
	if txn.CardInfo != nil {
		fmt.Fprintf(&b, "\nCard: %s ending in %s\n", cardName(txn.CardInfo), txn.CardInfo.Last4)
	}
	writeList(&b, "Reference Numbers", txn.ReferenceNumbers, "")
	writeList(&b, "Account Numbers (last 4 digits)", txn.AccountNumbers, "****")
	if len(txn.DocumentLabels) > 0 {
		fmt.Fprintf(&b, "\nDocument Labels: %s\n", strings.Join(txn.DocumentLabels, ", "))
	}

	fmt.Fprintf(&b, "\n%s\nVALIDATION RESULTS\n%s\n", lightRule, lightRule)
	status := "VALID"
	if !doc.Validation.IsValid {
		status = "INVALID"
	}
	fmt.Fprintf(&b, "Status: %s\n", status)
	writeBullets(&b, "Warnings", doc.Validation.Warnings)
	writeBullets(&b, "Errors", doc.Validation.Errors)
	fmt.Fprintf(&b, "\n%s\n", heavyRule)

	_, err := out.Write(b.Bytes())
	return err
}

func writeList(b *bytes.Buffer, title string, items []string, prefix string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  %s%s\n", prefix, item)
	}
}

func writeBullets(b *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func cardName(c *models.CardInfo) string {
	switch c.Kind {
	case models.CardCredit:
		return "Credit Card"
	case models.CardDebit:
		return "Debit Card"
	}
	if c.Label != "" {
		return c.Label
	}
	return "Unknown"
}
