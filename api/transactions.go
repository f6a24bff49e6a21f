package api

import (
	"fmt"
	"time"

	"finhealth/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionInput is the wire shape of one transaction. The full known
// history is passed per call; there is no pagination.
type transactionInput struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Merchant        string  `json:"merchant"`
	Category        string  `json:"category"`
	IsRecurring     bool    `json:"isRecurring"`
	IsIncomeDeposit bool    `json:"isIncomeDeposit"`
}

func transactionsFromInput(inputs []transactionInput) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0, len(inputs))
	for i, in := range inputs {
		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.NewValidationError("transaction %d has invalid date %q", i, in.Date)
		}
		category, err := domain.NewCategory(in.Category)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		id := uuid.Nil
		if in.ID != "" {
			id, err = uuid.Parse(in.ID)
			if err != nil {
				return nil, domain.NewValidationError("transaction %d has invalid id %q", i, in.ID)
			}
		}
		transactions = append(transactions, domain.Transaction{
			ID:              id,
			Amount:          decimal.NewFromFloat(in.Amount),
			Date:            date,
			Merchant:        in.Merchant,
			Category:        category,
			IsRecurring:     in.IsRecurring,
			IsIncomeDeposit: in.IsIncomeDeposit,
		})
	}
	return transactions, nil
}

// scoreSetResponse carries the stable dimension keys of the external
// contract.
type scoreSetResponse struct {
	IncomeStability     float64 `json:"incomeStability"`
	SpendingDiscipline  float64 `json:"spendingDiscipline"`
	DebtTrajectory      float64 `json:"debtTrajectory"`
	FinancialResilience float64 `json:"financialResilience"`
	GrowthMomentum      float64 `json:"growthMomentum"`
	Overall             float64 `json:"overall"`
}

func newScoreSetResponse(s domain.ScoreSet) scoreSetResponse {
	return scoreSetResponse{
		IncomeStability:     s.IncomeStability,
		SpendingDiscipline:  s.SpendingDiscipline,
		DebtTrajectory:      s.DebtTrajectory,
		FinancialResilience: s.FinancialResilience,
		GrowthMomentum:      s.GrowthMomentum,
		Overall:             s.Overall,
	}
}

type scoreDeltasResponse struct {
	IncomeStability     float64 `json:"incomeStability"`
	SpendingDiscipline  float64 `json:"spendingDiscipline"`
	DebtTrajectory      float64 `json:"debtTrajectory"`
	FinancialResilience float64 `json:"financialResilience"`
	GrowthMomentum      float64 `json:"growthMomentum"`
	Overall             float64 `json:"overall"`
}

func newScoreDeltasResponse(d domain.ScoreDeltas) scoreDeltasResponse {
	return scoreDeltasResponse{
		IncomeStability:     d.IncomeStability,
		SpendingDiscipline:  d.SpendingDiscipline,
		DebtTrajectory:      d.DebtTrajectory,
		FinancialResilience: d.FinancialResilience,
		GrowthMomentum:      d.GrowthMomentum,
		Overall:             d.Overall,
	}
}

type monthlySummaryResponse struct {
	Month                 string  `json:"month"`
	TotalDeposits         float64 `json:"totalDeposits"`
	TotalSpending         float64 `json:"totalSpending"`
	EssentialSpending     float64 `json:"essentialSpending"`
	DiscretionarySpending float64 `json:"discretionarySpending"`
	DebtPayments          float64 `json:"debtPayments"`
	SavingsTransfers      float64 `json:"savingsTransfers"`
	EndBalance            float64 `json:"endBalance"`
	IncomeSourceCount     int     `json:"incomeSourceCount"`
	HadOverdraft          bool    `json:"hadOverdraft"`
	SubscriptionCount     int     `json:"subscriptionCount"`
	HasPayrollDeposit     bool    `json:"hasPayrollDeposit"`
}

func newMonthlySummaryResponses(months []domain.MonthlySummary) []monthlySummaryResponse {
	out := make([]monthlySummaryResponse, 0, len(months))
	for _, m := range months {
		out = append(out, monthlySummaryResponse{
			Month:                 m.Month,
			TotalDeposits:         m.TotalDeposits.InexactFloat64(),
			TotalSpending:         m.TotalSpending.InexactFloat64(),
			EssentialSpending:     m.EssentialSpending.InexactFloat64(),
			DiscretionarySpending: m.DiscretionarySpending.InexactFloat64(),
			DebtPayments:          m.DebtPayments.InexactFloat64(),
			SavingsTransfers:      m.SavingsTransfers.InexactFloat64(),
			EndBalance:            m.EndBalance.InexactFloat64(),
			IncomeSourceCount:     m.IncomeSourceCount,
			HadOverdraft:          m.HadOverdraft,
			SubscriptionCount:     m.SubscriptionCount,
			HasPayrollDeposit:     m.HasPayrollDeposit,
		})
	}
	return out
}
