package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Currency identifies the currency an amount was attributed to.
type Currency string

const (
	CurrencyUSD     Currency = "USD"
	CurrencyCOP     Currency = "COP"
	CurrencyUnknown Currency = "UNKNOWN" // numeral found, currency not determinable
)

// TransactionType is the coarse category of a bank notification.
type TransactionType string

const (
	TypePurchase     TransactionType = "PURCHASE"
	TypeWireTransfer TransactionType = "WIRE_TRANSFER"
	TypeWithdrawal   TransactionType = "WITHDRAWAL"
	TypeDeposit      TransactionType = "DEPOSIT"
	TypePayment      TransactionType = "PAYMENT"
	TypeACHTransfer  TransactionType = "ACH_TRANSFER"
	TypeUnknown      TransactionType = "UNKNOWN"
)

// CardKind is the canonical card type.
type CardKind string

const (
	CardCredit  CardKind = "CREDIT"
	CardDebit   CardKind = "DEBIT"
	CardUnknown CardKind = "UNKNOWN"
)

// RecognitionResult is the normalized view of one OCR annotation document.
type RecognitionResult struct {
	FullText    string
	LogoLabels  []string
	ImageLabels []string
}

// BankContext holds the banks found in a document.
type BankContext struct {
	DetectedBanks []string // set semantics, first-seen order
	// IsRegionalDefaultCurrency is set when a detected bank formats
	// numerals with period thousands and comma decimals.
	IsRegionalDefaultCurrency bool
}

// AmountCandidate is a single monetary amount found in the text.
type AmountCandidate struct {
	Value       decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	DisplayText string          `json:"formatted"`
}

// MarshalJSON writes the amount as a bare JSON number so consumers that
// read it numerically keep working. Decoding accepts either form.
func (a AmountCandidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value       json.Number `json:"amount"`
		Currency    Currency    `json:"currency"`
		DisplayText string      `json:"formatted"`
	}{
		Value:       json.Number(a.Value.String()),
		Currency:    a.Currency,
		DisplayText: a.DisplayText,
	})
}

// CardInfo describes the card referenced by a transaction.
type CardInfo struct {
	Kind  CardKind `json:"type"`
	Label string   `json:"label,omitempty"` // matched label text, empty for a bare *DDDD
	Last4 string   `json:"last4"`
}

// TransactionRecord is everything extracted from one document.
type TransactionRecord struct {
	RawText          string            `json:"raw_text"`
	Amounts          []AmountCandidate `json:"amounts"`
	Dates            []string          `json:"dates"`
	Time             *string           `json:"time"`
	Merchant         *string           `json:"merchant"`
	CardInfo         *CardInfo         `json:"card_info"`
	ReferenceNumbers []string          `json:"reference_numbers"`
	AccountNumbers   []string          `json:"account_numbers"` // last 4 digits only
	TransactionType  TransactionType   `json:"transaction_type"`
	Banks            []string          `json:"banks"`
	DocumentLabels   []string          `json:"document_labels"`
}

// ValidationResult is the outcome of the business-rule checks on a record.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// ParsedDocument is the persisted output for one input document.
type ParsedDocument struct {
	Transaction *TransactionRecord `json:"transaction"`
	Validation  ValidationResult   `json:"validation"`
}
