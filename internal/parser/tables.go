package parser

import "github.com/insightdelivered/ocr-transaction-parser/internal/models"

// Category pairs a transaction type with the keywords that identify it.
type Category struct {
	Type     models.TransactionType
	Keywords []string // lower-case
}

// Tables is the static reference data the extractors consult.
type Tables struct {
	// KnownBanks are searched for in the recognized text.
	KnownBanks []string
	// RegionalBanks are lower-case names of banks whose numerals use
	// period thousands and comma decimals (COP by default).
	RegionalBanks []string
	// Categories are tested in order; the first match wins.
	Categories []Category
}

var colombianBanks = []string{
	"Bancolombia", "Davivienda", "BBVA Colombia", "Banco de Bogotá",
	"Banco de Occidente", "Banco Popular", "Banco AV Villas",
	"Banco Caja Social", "Bancoomeva", "Colpatria", "Itaú",
}

var internationalBanks = []string{
	"Chase", "Bank of America", "Wells Fargo", "Citibank", "Capital One",
	"US Bank", "PNC", "TD Bank", "Truist", "Fifth Third", "Santander",
}

var regionalBanks = []string{
	"bancolombia", "davivienda", "bbva colombia", "banco de bogotá",
	"banco de occidente", "banco popular", "banco av villas",
	"banco caja social", "bancoomeva", "colpatria", "itaú",
}

var categories = []Category{
	{models.TypePurchase, []string{"compraste", "compra", "purchase"}},
	{models.TypeWireTransfer, []string{"transferiste", "transferencia", "wire transfer", "wire"}},
	{models.TypeWithdrawal, []string{"retiraste", "retiro", "withdrawal", "withdraw", "atm"}},
	{models.TypeDeposit, []string{"depositaste", "depósito", "deposit", "deposited"}},
	{models.TypePayment, []string{"pagaste", "pago", "payment", "paid"}},
	{models.TypeACHTransfer, []string{"ach", "electronic transfer"}},
}

// DefaultTables returns the built-in Colombian and international tables.
// The returned value owns fresh slices and may be modified by the caller.
func DefaultTables() Tables {
	known := make([]string, 0, len(colombianBanks)+len(internationalBanks))
	known = append(known, colombianBanks...)
	known = append(known, internationalBanks...)

	cats := make([]Category, len(categories))
	for i, c := range categories {
		cats[i] = Category{Type: c.Type, Keywords: append([]string(nil), c.Keywords...)}
	}

	return Tables{
		KnownBanks:    known,
		RegionalBanks: append([]string(nil), regionalBanks...),
		Categories:    cats,
	}
}
