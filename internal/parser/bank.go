package parser

import (
	"strings"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// IdentifyBanks collects bank names from logo labels and from known names
// appearing in the text.
//
// Names are deduplicated by exact string equality, so "Bancolombia" from a
// logo and "BANCOLOMBIA" from another source are both kept.
func IdentifyBanks(rec models.RecognitionResult, t Tables) models.BankContext {
	seen := make(map[string]bool)
	banks := []string{}
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		banks = append(banks, name)
	}

	for _, logo := range rec.LogoLabels {
		add(logo)
	}

	text := strings.ToLower(rec.FullText)
	for _, bank := range t.KnownBanks {
		if containsFold(text, bank) {
			add(bank)
		}
	}

	return models.BankContext{
		DetectedBanks:             banks,
		IsRegionalDefaultCurrency: isRegional(banks, t.RegionalBanks),
	}
}

func isRegional(banks, regional []string) bool {
	for _, bank := range banks {
		lower := strings.ToLower(bank)
		for _, r := range regional {
			if lower == r {
				return true
			}
		}
	}
	return false
}

// containsFold reports whether lowerText contains needle, ignoring case.
// lowerText must already be lower-cased.
func containsFold(lowerText, needle string) bool {
	return strings.Contains(lowerText, strings.ToLower(needle))
}
