package domain

import "github.com/shopspring/decimal"

// MonthlySummary is the canonical per-month view of a user's cash flow.
// Every analytics consumer (scoring, stress tests, time machine, anomaly
// detection) works off this shape, so the aggregation that produces it
// lives in exactly one place.
type MonthlySummary struct {
	// Month is the calendar month key, formatted "2006-01".
	Month string

	TotalDeposits         decimal.Decimal
	TotalSpending         decimal.Decimal
	EssentialSpending     decimal.Decimal
	DiscretionarySpending decimal.Decimal
	DebtPayments          decimal.Decimal
	SavingsTransfers      decimal.Decimal

	// EndBalance is the cumulative running balance after this month's net
	// flow, carried across months from an implicit zero start. It is never
	// reset per month.
	EndBalance decimal.Decimal

	IncomeSourceCount int
	// HadOverdraft marks a month whose running balance finished negative.
	// The flag is month-local; a later positive month does not clear it.
	HadOverdraft      bool
	SubscriptionCount int
	HasPayrollDeposit bool
}

func (m MonthlySummary) NetFlow() decimal.Decimal {
	return m.TotalDeposits.Sub(m.TotalSpending)
}

func CopyMonthlySummaries(months []MonthlySummary) []MonthlySummary {
	out := make([]MonthlySummary, len(months))
	copy(out, months)
	return out
}
