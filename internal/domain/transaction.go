package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the fixed set of spending categories. Income deposits carry a
// category too but it is ignored by aggregation.
type Category string

const (
	CategoryRent            Category = "rent"
	CategoryGroceries       Category = "groceries"
	CategoryUtilities       Category = "utilities"
	CategoryInsurance       Category = "insurance"
	CategoryMedical         Category = "medical"
	CategoryTransportation  Category = "transportation"
	CategoryDebtPayment     Category = "debt_payment"
	CategorySavingsTransfer Category = "savings_transfer"
	CategorySubscription    Category = "subscription"
	CategoryDining          Category = "dining"
	CategoryEntertainment   Category = "entertainment"
	CategoryShopping        Category = "shopping"
	CategoryTravel          Category = "travel"
	CategoryIncome          Category = "income"
	CategoryOther           Category = "other"
)

var allCategories = map[Category]struct{}{
	CategoryRent:            {},
	CategoryGroceries:       {},
	CategoryUtilities:       {},
	CategoryInsurance:       {},
	CategoryMedical:         {},
	CategoryTransportation:  {},
	CategoryDebtPayment:     {},
	CategorySavingsTransfer: {},
	CategorySubscription:    {},
	CategoryDining:          {},
	CategoryEntertainment:   {},
	CategoryShopping:        {},
	CategoryTravel:          {},
	CategoryIncome:          {},
	CategoryOther:           {},
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := allCategories[c]; !ok {
		return "", NewValidationError("unknown transaction category %q", s)
	}
	return c, nil
}

// IsEssential maps each category to exactly one spending bucket, so
// essential + discretionary always partitions total spending.
func (c Category) IsEssential() bool {
	switch c {
	case CategoryRent,
		CategoryGroceries,
		CategoryUtilities,
		CategoryInsurance,
		CategoryMedical,
		CategoryTransportation,
		CategoryDebtPayment:
		return true
	}
	return false
}

type Transaction struct {
	ID              uuid.UUID
	Amount          decimal.Decimal
	Date            time.Time
	Merchant        string
	Category        Category
	IsRecurring     bool
	IsIncomeDeposit bool
}

func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s (%s)", t.Date.Format("2006-01-02"), t.Amount.StringFixed(2), t.Merchant, t.Category)
}
