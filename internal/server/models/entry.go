package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry types.
const (
	EntryTypeExpense = "expense"
	EntryTypeIncome  = "income"
)

// DateLayout is the calendar-date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Entry is one income or expense record belonging to exactly one owner.
// Date carries no time-of-day component.
type Entry struct {
	ID          string
	OwnerID     string
	Type        string
	Amount      decimal.Decimal
	Date        string
	Description string
	CreatedAt   time.Time
}
