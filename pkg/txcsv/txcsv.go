// Package txcsv loads transaction history from CSV files, mainly for
// running analyses from the command line against exported data.
package txcsv

import (
	"fmt"
	"os"
	"time"

	"finhealth/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type row struct {
	ID              string  `csv:"id"`
	Date            string  `csv:"date"`
	Amount          float64 `csv:"amount"`
	Merchant        string  `csv:"merchant"`
	Category        string  `csv:"category"`
	IsRecurring     bool    `csv:"is_recurring"`
	IsIncomeDeposit bool    `csv:"is_income"`
}

// LoadFile reads transactions from a CSV with columns id, date, amount,
// merchant, category, is_recurring, is_income. The id column may be
// empty, in which case a fresh one is assigned.
func LoadFile(path string) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows := []row{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for i, r := range rows {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to parse date %q: %w", i+1, r.Date, err)
		}
		category, err := domain.NewCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		id := uuid.New()
		if r.ID != "" {
			id, err = uuid.Parse(r.ID)
			if err != nil {
				return nil, fmt.Errorf("row %d: failed to parse id %q: %w", i+1, r.ID, err)
			}
		}
		transactions = append(transactions, domain.Transaction{
			ID:              id,
			Amount:          decimal.NewFromFloat(r.Amount),
			Date:            date,
			Merchant:        r.Merchant,
			Category:        category,
			IsRecurring:     r.IsRecurring,
			IsIncomeDeposit: r.IsIncomeDeposit,
		})
	}

	return transactions, nil
}
