package models

import "github.com/shopspring/decimal"

// MonthlySummary is one year-month bucket of an owner's ledger. A month
// with no income entries reports a zero TotalIncome, and symmetrically
// for expenses.
type MonthlySummary struct {
	Period       string
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}
