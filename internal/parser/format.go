package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatGrouped renders d with the given number of decimals (half-even
// rounding), grouping the integer part in threes.
//
//	formatGrouped(51558, 2, ".", ",") == "51.558,00"
//	formatGrouped(1234.56, 2, ",", ".") == "1,234.56"
func formatGrouped(d decimal.Decimal, places int32, thousands, point string) string {
	fixed := d.StringFixedBank(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	intPart, frac, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(thousands)
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteString(point)
		b.WriteString(frac)
	}
	return b.String()
}
