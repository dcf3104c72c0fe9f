package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// Date patterns. Matches are returned verbatim; 03/04/2024 is left for
// the consumer to read as March or April.
var datePatterns = []*regexp.Regexp{
	// MM/DD/YYYY or DD/MM/YYYY
	regexp.MustCompile(`(?i)\d{1,2}/\d{1,2}/\d{2,4}`),
	// YYYY-MM-DD
	regexp.MustCompile(`(?i)\d{4}-\d{2}-\d{2}`),
	// Jan 15, 2024
	regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}`),
}

var (
	clockPattern   = regexp.MustCompile(`\b([0-2]?\d):([0-5]\d)` + space + `*(AM|PM|am|pm)?\b`)
	aLasPattern    = regexp.MustCompile(`a` + space + `+las` + space + `+([0-2]?\d):([0-5]\d)`)
	whitespaceRuns = regexp.MustCompile(space + `+`)
)

// Merchant patterns, tried in order.
var merchantPatterns = []*regexp.Regexp{
	// "en EXITO SABANETA con"
	regexp.MustCompile(`en` + space + `+([A-Z][A-Z` + spaceClass + `]+?)(?:` + space + `+con` + space + `+)`),
	// "at STORE NAME"
	regexp.MustCompile(`at` + space + `+([A-Z][A-Z` + spaceClass + `]+?)(?:` + space + `|$)`),
	// "@MERCHANT"
	regexp.MustCompile(`@` + space + `*([A-Z][A-Z` + spaceClass + `]+?)(?:` + space + `|$)`),
}

var (
	// "T.Cred *9095", "T.Deb *1234"
	cardLabelSpanish = regexp.MustCompile(`(?i)(T\.Cred|T\.Deb|Tarjeta)` + space + `*\*(\d{4})`)
	// "Credit *9095", "Card *1234"
	cardLabelEnglish = regexp.MustCompile(`(?i)(Credit|Debit|Card)` + space + `*\*(\d{4})`)
	cardBareDigits   = regexp.MustCompile(`\*(\d{4})`)
)

var (
	labeledReferencePattern = regexp.MustCompile(`(?i)(?:REF|REFERENCE|CONFIRMATION|TRANSACTION)` + space + `*(?:NO|NUMBER|#)?:?` + space + `*([A-Z0-9-]+)`)
	// ABC123456
	bareReferencePattern = regexp.MustCompile(`(?i)\b[A-Z]{2,}\d{6,}\b`)
)

var (
	maskedAccountPattern  = regexp.MustCompile(`\*{4,}(\d{4})`)
	labeledAccountPattern = regexp.MustCompile(`(?i)(?:ACCOUNT|ACCT)` + space + `*(?:NO|NUMBER|#)?:?` + space + `*\**(\d{4})`)
)

// ExtractDates returns every date-like substring, pattern by pattern.
func ExtractDates(text string) []string {
	dates := []string{}
	for _, re := range datePatterns {
		dates = append(dates, re.FindAllString(text, -1)...)
	}
	return dates
}

// ExtractTime returns the first clock time as "H:MM MERIDIEM", trimmed.
func ExtractTime(text string) (string, bool) {
	if m := clockPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1] + ":" + m[2] + " " + m[3]), true
	}
	if m := aLasPattern.FindStringSubmatch(text); m != nil {
		return m[1] + ":" + m[2], true
	}
	return "", false
}

// ExtractMerchant returns the merchant name with whitespace collapsed.
func ExtractMerchant(text string) (string, bool) {
	for _, re := range merchantPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(whitespaceRuns.ReplaceAllString(m[1], " ")), true
		}
	}
	return "", false
}

// ExtractCardInfo returns the card kind and last four digits.
func ExtractCardInfo(text string) (*models.CardInfo, bool) {
	for _, re := range []*regexp.Regexp{cardLabelSpanish, cardLabelEnglish} {
		if m := re.FindStringSubmatch(text); m != nil {
			return &models.CardInfo{Kind: cardKind(m[1]), Label: m[1], Last4: m[2]}, true
		}
	}
	if m := cardBareDigits.FindStringSubmatch(text); m != nil {
		return &models.CardInfo{Kind: models.CardUnknown, Last4: m[1]}, true
	}
	return nil, false
}

func cardKind(label string) models.CardKind {
	switch strings.ToLower(label) {
	case "t.cred", "tarjeta", "credit":
		return models.CardCredit
	case "t.deb", "debit":
		return models.CardDebit
	default:
		return models.CardUnknown
	}
}

// ExtractReferenceNumbers returns labeled references followed by bare
// letter+digit codes. Duplicates are kept.
func ExtractReferenceNumbers(text string) []string {
	refs := append([]string{}, submatches(labeledReferencePattern, text)...)
	return append(refs, bareReferencePattern.FindAllString(text, -1)...)
}

// ExtractAccountNumbers returns the last four digits of every masked or
// labeled account number. Longer numbers are never captured whole.
func ExtractAccountNumbers(text string) []string {
	accounts := append([]string{}, submatches(maskedAccountPattern, text)...)
	return append(accounts, submatches(labeledAccountPattern, text)...)
}
