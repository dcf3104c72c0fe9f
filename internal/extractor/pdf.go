package extractor

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// FromPDF reads the text layer of a PDF (bank notification, receipt,
// printed voucher) into a RecognitionResult carrying only FullText.
func FromPDF(filePath string) (models.RecognitionResult, error) {
	text, err := ExtractPDFText(filePath)
	if err != nil {
		return models.RecognitionResult{}, err
	}
	return models.RecognitionResult{FullText: text, LogoLabels: []string{}, ImageLabels: []string{}}, nil
}

// ExtractPDFText returns the text of every page joined by newlines.
// It tries the Go PDF library first and falls back to the external
// pdftotext command (poppler-utils).
func ExtractPDFText(filePath string) (string, error) {
	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(text) {
		return text, nil
	}

	popplerText, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerText) {
		return popplerText, nil
	}

	if libErr != nil {
		return "", fmt.Errorf("PDF text extraction failed: %w", libErr)
	}
	return "", fmt.Errorf("no readable text layer in %s; the PDF may be scanned, try the image input instead", filePath)
}

// isReadableText requires some content with mostly printable characters.
// Accented letters are allowed since notifications are often Spanish.
func isReadableText(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < 8 {
		return false
	}
	total, readable := 0, 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			readable++
		}
	}
	return float64(readable)/float64(total) > 0.9
}

// extractWithLibrary uses the ledongthuc/pdf library, row by row first and
// whole-document plain text second.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	text = extractByRow(r)
	if isReadableText(text) {
		return text, nil
	}
	return extractByReaderPlainText(r), nil
}

func extractByRow(r *pdf.Reader) string {
	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext shells out to pdftotext for PDFs the library
// cannot decode.
func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
