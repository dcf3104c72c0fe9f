package parser

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

var (
	regional    = models.BankContext{DetectedBanks: []string{"Bancolombia"}, IsRegionalDefaultCurrency: true}
	nonRegional = models.BankContext{DetectedBanks: []string{}}
)

type wantAmount struct {
	value     string
	currency  models.Currency
	formatted string
}

func TestCascade_Extract(t *testing.T) {
	tests := []struct {
		name string
		text string
		bank models.BankContext
		want []wantAmount
	}{
		{
			name: "explicit COP",
			text: "Compraste COP 51.558,00 en EXITO",
			bank: nonRegional,
			want: []wantAmount{{"51558.00", models.CurrencyCOP, "COP 51.558,00"}},
		},
		{
			name: "explicit COP lower case without space",
			text: "valor cop5.000",
			bank: nonRegional,
			want: []wantAmount{{"5000", models.CurrencyCOP, "COP 5.000,00"}},
		},
		{
			name: "explicit COP after a no-break space",
			text: "Compraste COP\u00a051.558,00 en EXITO",
			bank: nonRegional,
			want: []wantAmount{{"51558.00", models.CurrencyCOP, "COP 51.558,00"}},
		},
		{
			name: "explicit USD after a narrow no-break space",
			text: "Charged USD\u202f1,234.56",
			bank: nonRegional,
			want: []wantAmount{{"1234.56", models.CurrencyUSD, "USD 1,234.56"}},
		},
		{
			name: "dollar sign after a no-break space with regional bank",
			text: "Transferiste $\u00a0200.000",
			bank: regional,
			want: []wantAmount{{"200000", models.CurrencyCOP, "$ 200.000"}},
		},
		{
			name: "explicit USD",
			text: "Charged USD 1,234.56 today",
			bank: nonRegional,
			want: []wantAmount{{"1234.56", models.CurrencyUSD, "USD 1,234.56"}},
		},
		{
			name: "dollar sign thousands with regional bank",
			text: "Transferiste $ 200.000",
			bank: regional,
			want: []wantAmount{{"200000", models.CurrencyCOP, "$ 200.000"}},
		},
		{
			name: "dollar sign thousands without regional bank reads as US decimals",
			text: "Transferiste $ 200.000",
			bank: nonRegional,
			want: []wantAmount{{"200", models.CurrencyUSD, "$200.00"}},
		},
		{
			name: "dollar sign US format",
			text: "Paid $1,234.56",
			bank: nonRegional,
			want: []wantAmount{{"1234.56", models.CurrencyUSD, "$1,234.56"}},
		},
		{
			name: "regional both separators",
			text: "$ 1.234,56",
			bank: regional,
			want: []wantAmount{{"1234.56", models.CurrencyCOP, "$ 1.235"}},
		},
		{
			name: "regional single period decimal",
			text: "$200.50",
			bank: regional,
			want: []wantAmount{{"200.5", models.CurrencyCOP, "$ 200"}},
		},
		{
			name: "regional comma only is a decimal point",
			text: "$ 200,50",
			bank: regional,
			want: []wantAmount{{"200.5", models.CurrencyCOP, "$ 200"}},
		},
		{
			name: "regional plain integer",
			text: "$ 45",
			bank: regional,
			want: []wantAmount{{"45", models.CurrencyCOP, "$ 45"}},
		},
		{
			name: "all explicit rules accumulate in priority order",
			text: "$100 then COP 100,00 then USD 5",
			bank: regional,
			want: []wantAmount{
				{"100", models.CurrencyCOP, "COP 100,00"},
				{"5", models.CurrencyUSD, "USD 5.00"},
				{"100", models.CurrencyCOP, "$ 100"},
			},
		},
		{
			name: "fallback without regional bank is unknown currency",
			text: "Total 1.234.567,89",
			bank: nonRegional,
			want: []wantAmount{{"1234567.89", models.CurrencyUnknown, "1.234.567,89"}},
		},
		{
			name: "fallback with regional bank is COP",
			text: "Saldo 200.000 y 3.500,50",
			bank: regional,
			want: []wantAmount{
				{"200000", models.CurrencyCOP, "200.000"},
				{"3500.50", models.CurrencyCOP, "3.500,50"},
			},
		},
		{
			name: "fallback suppressed by any explicit match",
			text: "$1 and 200.000",
			bank: nonRegional,
			want: []wantAmount{{"1", models.CurrencyUSD, "$1.00"}},
		},
		{
			name: "unparseable dollar numeral is dropped and fallback fires",
			text: "$ 1.234.56",
			bank: regional,
			want: []wantAmount{{"1234", models.CurrencyCOP, "1.234"}},
		},
		{
			name: "signs are never captured",
			text: "COP -5.000",
			bank: nonRegional,
			want: []wantAmount{{"5000", models.CurrencyUnknown, "5.000"}},
		},
		{
			name: "nothing found",
			text: "no numbers here 12",
			bank: regional,
			want: nil,
		},
	}

	cascade := DefaultCascade()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cascade.Extract(tt.text, tt.bank)
			if got == nil {
				t.Fatal("Extract returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d amounts %+v, want %d", len(got), got, len(tt.want))
			}
			for i, w := range tt.want {
				wantValue := decimal.RequireFromString(w.value)
				if !got[i].Value.Equal(wantValue) {
					t.Errorf("amount[%d].Value: got %s, want %s", i, got[i].Value, wantValue)
				}
				if got[i].Currency != w.currency {
					t.Errorf("amount[%d].Currency: got %q, want %q", i, got[i].Currency, w.currency)
				}
				if got[i].DisplayText != w.formatted {
					t.Errorf("amount[%d].DisplayText: got %q, want %q", i, got[i].DisplayText, w.formatted)
				}
				if got[i].Value.IsNegative() {
					t.Errorf("amount[%d] is negative: %s", i, got[i].Value)
				}
			}
		})
	}
}

type stubRule struct {
	name string
	out  []models.AmountCandidate
}

func (s stubRule) Name() string { return s.name }

func (s stubRule) Extract(string, models.BankContext) []models.AmountCandidate { return s.out }

func TestCascade_FallbackGate(t *testing.T) {
	one := []models.AmountCandidate{{Value: decimal.NewFromInt(1), Currency: models.CurrencyUSD}}
	fallback := stubRule{name: "fallback", out: []models.AmountCandidate{{Value: decimal.NewFromInt(9), Currency: models.CurrencyUnknown}}}

	c := Cascade{Explicit: []Rule{stubRule{name: "empty"}, stubRule{name: "one", out: one}}, Fallback: fallback}
	if got := c.Extract("", nonRegional); len(got) != 1 || got[0].Currency != models.CurrencyUSD {
		t.Errorf("fallback should not fire when an explicit rule matched, got %+v", got)
	}

	c = Cascade{Explicit: []Rule{stubRule{name: "empty"}}, Fallback: fallback}
	if got := c.Extract("", nonRegional); len(got) != 1 || got[0].Currency != models.CurrencyUnknown {
		t.Errorf("fallback should fire when explicit rules found nothing, got %+v", got)
	}

	c = Cascade{}
	if got := c.Extract("COP 1", nonRegional); got == nil || len(got) != 0 {
		t.Errorf("empty cascade: got %+v, want empty slice", got)
	}
}

func TestRuleNames(t *testing.T) {
	c := DefaultCascade()
	var names []string
	for _, r := range c.Explicit {
		names = append(names, r.Name())
	}
	names = append(names, c.Fallback.Name())

	want := []string{"cop-marker", "usd-marker", "dollar-sign", "unprefixed-cop"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("rule %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFormatGrouped(t *testing.T) {
	tests := []struct {
		input     string
		places    int32
		thousands string
		point     string
		expected  string
	}{
		{"51558", 2, ".", ",", "51.558,00"},
		{"1234.56", 2, ",", ".", "1,234.56"},
		{"200000", 0, ".", "", "200.000"},
		{"999", 2, ",", ".", "999.00"},
		{"0", 0, ".", "", "0"},
		{"1234567.891", 2, ",", ".", "1,234,567.89"},
		{"2.5", 0, ".", "", "2"},
		{"3.5", 0, ".", "", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := formatGrouped(decimal.RequireFromString(tt.input), tt.places, tt.thousands, tt.point)
			if got != tt.expected {
				t.Errorf("formatGrouped(%s): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
