package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// Rule is one step of the amount cascade.
type Rule interface {
	// Name identifies the rule in logs and tests.
	Name() string
	// Extract returns every amount the rule finds, in text order.
	Extract(text string, bank models.BankContext) []models.AmountCandidate
}

// spaceClass is the body of a character class matching Unicode
// whitespace, including U+00A0 and the other separators OCR emits.
// space is that class on its own.
const (
	spaceClass = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`
	space      = `[` + spaceClass + `]`
)

var (
	// COP 51.558,00: period thousands, optional comma decimals
	copMarkerPattern = regexp.MustCompile(`(?i)COP` + space + `*(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`)
	// USD 1,234.56: comma thousands, optional period decimals
	usdMarkerPattern = regexp.MustCompile(`(?i)USD` + space + `*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
	// $ 200.000 or $1,234.56: separator roles depend on the bank
	dollarSignPattern = regexp.MustCompile(`\$` + space + `*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	// 200.000,00 with no currency marker; needs at least one thousands group
	unprefixedCOPPattern = regexp.MustCompile(`(\d{1,3}(?:\.\d{3})+(?:,\d{2})?)`)
)

// Cascade applies the explicit rules in order, accumulating every match,
// and consults the fallback only when none of them found anything.
type Cascade struct {
	Explicit []Rule
	Fallback Rule
}

// DefaultCascade returns the COP, USD, dollar-sign and unprefixed rules.
func DefaultCascade() Cascade {
	return Cascade{
		Explicit: []Rule{COPMarkerRule{}, USDMarkerRule{}, DollarSignRule{}},
		Fallback: UnprefixedCOPRule{},
	}
}

// Extract runs the cascade over text. It never returns nil.
func (c Cascade) Extract(text string, bank models.BankContext) []models.AmountCandidate {
	amounts := []models.AmountCandidate{}
	for _, r := range c.Explicit {
		amounts = append(amounts, r.Extract(text, bank)...)
	}
	if len(amounts) == 0 && c.Fallback != nil {
		amounts = append(amounts, c.Fallback.Extract(text, bank)...)
	}
	return amounts
}

// COPMarkerRule matches amounts explicitly tagged COP.
type COPMarkerRule struct{}

func (COPMarkerRule) Name() string { return "cop-marker" }

func (COPMarkerRule) Extract(text string, _ models.BankContext) []models.AmountCandidate {
	var out []models.AmountCandidate
	for _, m := range submatches(copMarkerPattern, text) {
		v, err := parseColombian(m)
		if err != nil {
			continue
		}
		out = append(out, models.AmountCandidate{
			Value:       v,
			Currency:    models.CurrencyCOP,
			DisplayText: "COP " + formatGrouped(v, 2, ".", ","),
		})
	}
	return out
}

// USDMarkerRule matches amounts explicitly tagged USD.
type USDMarkerRule struct{}

func (USDMarkerRule) Name() string { return "usd-marker" }

func (USDMarkerRule) Extract(text string, _ models.BankContext) []models.AmountCandidate {
	var out []models.AmountCandidate
	for _, m := range submatches(usdMarkerPattern, text) {
		v, err := parseUS(m)
		if err != nil {
			continue
		}
		out = append(out, models.AmountCandidate{
			Value:       v,
			Currency:    models.CurrencyUSD,
			DisplayText: "USD " + formatGrouped(v, 2, ",", "."),
		})
	}
	return out
}

// DollarSignRule matches "$" amounts. Whether "$" means COP or USD, and
// which separator is the decimal point, is decided by the bank context.
type DollarSignRule struct{}

func (DollarSignRule) Name() string { return "dollar-sign" }

func (DollarSignRule) Extract(text string, bank models.BankContext) []models.AmountCandidate {
	var out []models.AmountCandidate
	for _, m := range submatches(dollarSignPattern, text) {
		if bank.IsRegionalDefaultCurrency {
			v, err := decimal.NewFromString(regionalNumeral(m))
			if err != nil {
				continue
			}
			out = append(out, models.AmountCandidate{
				Value:       v,
				Currency:    models.CurrencyCOP,
				DisplayText: "$ " + formatGrouped(v, 0, ".", ""),
			})
			continue
		}

		// A Colombian-style "$200.000" lands here as 200 when no regional
		// bank was detected.
		v, err := parseUS(m)
		if err != nil {
			continue
		}
		out = append(out, models.AmountCandidate{
			Value:       v,
			Currency:    models.CurrencyUSD,
			DisplayText: "$" + formatGrouped(v, 2, ",", "."),
		})
	}
	return out
}

// regionalNumeral rewrites a "$" numeral from a regional bank into a
// plain decimal string.
func regionalNumeral(m string) string {
	hasPeriod := strings.Contains(m, ".")
	hasComma := strings.Contains(m, ",")

	switch {
	case hasPeriod && hasComma:
		return strings.ReplaceAll(strings.ReplaceAll(m, ".", ""), ",", ".")
	case hasPeriod:
		segments := strings.Split(m, ".")
		if len(segments[len(segments)-1]) == 3 {
			return strings.ReplaceAll(m, ".", "")
		}
		// "200.50" is a decimal; "1.234.56" stays as is and fails to parse.
		return m
	default:
		return strings.ReplaceAll(m, ",", ".")
	}
}

// UnprefixedCOPRule matches bare Colombian-style numerals. It is only
// consulted when no currency-tagged amount exists.
type UnprefixedCOPRule struct{}

func (UnprefixedCOPRule) Name() string { return "unprefixed-cop" }

func (UnprefixedCOPRule) Extract(text string, bank models.BankContext) []models.AmountCandidate {
	currency := models.CurrencyUnknown
	if bank.IsRegionalDefaultCurrency {
		currency = models.CurrencyCOP
	}

	var out []models.AmountCandidate
	for _, m := range submatches(unprefixedCOPPattern, text) {
		v, err := parseColombian(m)
		if err != nil {
			continue
		}
		out = append(out, models.AmountCandidate{
			Value:       v,
			Currency:    currency,
			DisplayText: m,
		})
	}
	return out
}

// parseColombian converts "51.558,00" to 51558.00.
func parseColombian(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

// parseUS converts "1,234.56" to 1234.56.
func parseUS(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// submatches returns the first capture group of every match.
func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
