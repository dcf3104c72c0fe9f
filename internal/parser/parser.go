package parser

import (
	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// maxDocumentLabels caps how many image labels are copied to a record.
const maxDocumentLabels = 5

// Parser turns recognized text into a transaction record. It holds only
// read-only state and is safe for concurrent use.
type Parser struct {
	tables  Tables
	cascade Cascade
}

// Option customizes a Parser.
type Option func(*Parser)

// WithTables replaces the built-in bank and keyword tables.
func WithTables(t Tables) Option {
	return func(p *Parser) { p.tables = t }
}

// WithCascade replaces the amount rules.
func WithCascade(c Cascade) Option {
	return func(p *Parser) { p.cascade = c }
}

// New returns a Parser using the default tables and cascade unless
// overridden.
func New(opts ...Option) *Parser {
	p := &Parser{
		tables:  DefaultTables(),
		cascade: DefaultCascade(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tables returns the reference data in use.
func (p *Parser) Tables() Tables {
	return p.tables
}

// Parse extracts every field from rec. Missing fields are left empty;
// Parse never fails.
func (p *Parser) Parse(rec models.RecognitionResult) *models.TransactionRecord {
	text := rec.FullText

	// Bank identity decides how "$" numerals are read.
	bank := IdentifyBanks(rec, p.tables)

	txn := &models.TransactionRecord{
		RawText:          text,
		Amounts:          p.cascade.Extract(text, bank),
		Dates:            ExtractDates(text),
		ReferenceNumbers: ExtractReferenceNumbers(text),
		AccountNumbers:   ExtractAccountNumbers(text),
		TransactionType:  ClassifyTransaction(text, p.tables.Categories),
		Banks:            bank.DetectedBanks,
		DocumentLabels:   firstLabels(rec.ImageLabels),
	}

	if t, ok := ExtractTime(text); ok {
		txn.Time = &t
	}
	if m, ok := ExtractMerchant(text); ok {
		txn.Merchant = &m
	}
	if card, ok := ExtractCardInfo(text); ok {
		txn.CardInfo = card
	}

	return txn
}

func firstLabels(labels []string) []string {
	n := len(labels)
	if n > maxDocumentLabels {
		n = maxDocumentLabels
	}
	out := make([]string, n)
	copy(out, labels[:n])
	return out
}
