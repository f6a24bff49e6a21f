package domain

import "github.com/shopspring/decimal"

// ProjectedMonth is one step of a time machine trajectory. OverallScore
// is the overall health score over the real history plus the projection
// up to and including this month.
type ProjectedMonth struct {
	Month            string
	TotalDeposits    decimal.Decimal
	TotalSpending    decimal.Decimal
	SavingsTransfers decimal.Decimal
	DebtPayments     decimal.Decimal
	EndBalance       decimal.Decimal
	HadOverdraft     bool
	OverallScore     float64
}

type SimulationResult struct {
	Trajectory  []ProjectedMonth
	FinalScores ScoreSet
}
