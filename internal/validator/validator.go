// Package validator applies business rules to extracted transactions.
package validator

import (
	"fmt"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// maxExpectedAmounts is the count above which a document is flagged as
// likely containing more than one transaction.
const maxExpectedAmounts = 5

// Messages reported by Validate.
const (
	MsgNoAmounts    = "No monetary amounts detected"
	MsgNoDates      = "No dates detected"
	MsgUnknownType  = "Could not determine transaction type"
	MsgNoReferences = "No reference numbers detected"
)

// Validate checks the record. Only a missing amount is an error; the
// other checks produce warnings.
func Validate(txn *models.TransactionRecord) models.ValidationResult {
	res := models.ValidationResult{
		IsValid:  true,
		Warnings: []string{},
		Errors:   []string{},
	}

	if len(txn.Amounts) == 0 {
		res.Errors = append(res.Errors, MsgNoAmounts)
	}
	if len(txn.Dates) == 0 {
		res.Warnings = append(res.Warnings, MsgNoDates)
	}
	if txn.TransactionType == models.TypeUnknown {
		res.Warnings = append(res.Warnings, MsgUnknownType)
	}
	if len(txn.ReferenceNumbers) == 0 {
		res.Warnings = append(res.Warnings, MsgNoReferences)
	}
	if n := len(txn.Amounts); n > maxExpectedAmounts {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Multiple amounts detected (%d)", n))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
