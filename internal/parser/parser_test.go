package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

func TestParser_Parse(t *testing.T) {
	p := New()

	rec := models.RecognitionResult{
		FullText: "Compraste COP 51.558,00 en EXITO SABANETA con T.Cred *9095 a las 20:33",
	}
	txn := p.Parse(rec)

	assert.Equal(t, rec.FullText, txn.RawText)
	assert.Equal(t, models.TypePurchase, txn.TransactionType)

	require.Len(t, txn.Amounts, 1)
	assert.True(t, txn.Amounts[0].Value.Equal(decimal.NewFromInt(51558)), "amount = %s", txn.Amounts[0].Value)
	assert.Equal(t, models.CurrencyCOP, txn.Amounts[0].Currency)
	assert.Equal(t, "COP 51.558,00", txn.Amounts[0].DisplayText)

	require.NotNil(t, txn.Merchant)
	assert.Equal(t, "EXITO SABANETA", *txn.Merchant)

	require.NotNil(t, txn.CardInfo)
	assert.Equal(t, models.CardCredit, txn.CardInfo.Kind)
	assert.Equal(t, "9095", txn.CardInfo.Last4)

	require.NotNil(t, txn.Time)
	assert.Equal(t, "20:33", *txn.Time)

	assert.Empty(t, txn.Dates)
	assert.Empty(t, txn.ReferenceNumbers)
	assert.Empty(t, txn.AccountNumbers)
	assert.Empty(t, txn.Banks)
	assert.NotNil(t, txn.Banks)
	assert.NotNil(t, txn.DocumentLabels)
}

func TestParser_ParseEmpty(t *testing.T) {
	txn := New().Parse(models.RecognitionResult{})

	assert.Empty(t, txn.Amounts)
	assert.NotNil(t, txn.Amounts)
	assert.Nil(t, txn.Time)
	assert.Nil(t, txn.Merchant)
	assert.Nil(t, txn.CardInfo)
	assert.Equal(t, models.TypeUnknown, txn.TransactionType)
}

func TestParser_BankDrivesDollarCurrency(t *testing.T) {
	p := New()

	withLogo := p.Parse(models.RecognitionResult{
		FullText:   "Transferiste $ 200.000",
		LogoLabels: []string{"Bancolombia"},
	})
	require.Len(t, withLogo.Amounts, 1)
	assert.Equal(t, models.CurrencyCOP, withLogo.Amounts[0].Currency)
	assert.True(t, withLogo.Amounts[0].Value.Equal(decimal.NewFromInt(200000)))

	without := p.Parse(models.RecognitionResult{FullText: "Transferiste $ 200.000"})
	require.Len(t, without.Amounts, 1)
	assert.Equal(t, models.CurrencyUSD, without.Amounts[0].Currency)
	assert.True(t, without.Amounts[0].Value.Equal(decimal.NewFromInt(200)))
}

func TestParser_DocumentLabelsCapped(t *testing.T) {
	rec := models.RecognitionResult{
		ImageLabels: []string{"Text", "Font", "Screenshot", "Number", "Document", "Paper", "Receipt"},
	}
	txn := New().Parse(rec)
	assert.Equal(t, []string{"Text", "Font", "Screenshot", "Number", "Document"}, txn.DocumentLabels)

	rec.ImageLabels[0] = "mutated"
	assert.Equal(t, "Text", txn.DocumentLabels[0], "labels must be copied")
}

func TestParser_WithTables(t *testing.T) {
	tables := Tables{
		KnownBanks:    []string{"Nequi"},
		RegionalBanks: []string{"nequi"},
		Categories:    []Category{{Type: models.TypePayment, Keywords: []string{"enviaste"}}},
	}
	p := New(WithTables(tables))

	txn := p.Parse(models.RecognitionResult{FullText: "Nequi: enviaste $ 10.000"})
	assert.Equal(t, []string{"Nequi"}, txn.Banks)
	assert.Equal(t, models.TypePayment, txn.TransactionType)
	require.Len(t, txn.Amounts, 1)
	assert.Equal(t, models.CurrencyCOP, txn.Amounts[0].Currency)
	assert.Equal(t, "$ 10.000", txn.Amounts[0].DisplayText)
	assert.Equal(t, tables.KnownBanks, p.Tables().KnownBanks)
}

func TestParser_WithCascade(t *testing.T) {
	p := New(WithCascade(Cascade{Explicit: []Rule{USDMarkerRule{}}}))
	txn := p.Parse(models.RecognitionResult{FullText: "COP 5.000 USD 3"})
	require.Len(t, txn.Amounts, 1)
	assert.Equal(t, models.CurrencyUSD, txn.Amounts[0].Currency)
}
