package domain

import "time"

// StressScenario describes one entry of the static stress test catalog.
type StressScenario struct {
	ID          string
	Label       string
	Description string
}

// StressResult bundles the outcome of running one scenario against a
// user's history. GeneratedAt is report metadata only - it never feeds
// back into scoring.
type StressResult struct {
	ScenarioID     string
	BaselineScores ScoreSet
	StressedScores ScoreSet
	Deltas         ScoreDeltas
	Narrative      string
	GeneratedAt    time.Time
}

// ScenarioModifier is one user-supplied perturbation for forward
// simulation. Every field defaults to zero/false when absent; multiple
// modifiers compose additively per field, and the two flags compose
// with OR.
type ScenarioModifier struct {
	// IncomeChangePct shifts projected monthly income by this percentage.
	IncomeChangePct float64
	// ExtraMonthlySavings adds this amount to monthly savings transfers.
	ExtraMonthlySavings float64
	// ExtraMonthlyDebtPayment adds this amount to monthly debt payments.
	ExtraMonthlyDebtPayment float64
	// MonthlyExpenseDelta shifts monthly discretionary spending, positive
	// or negative.
	MonthlyExpenseDelta float64
	// SubscriptionsCancelled removes this many subscriptions, priced at
	// the user's average subscription charge.
	SubscriptionsCancelled int
	// OneTimeExpense lands in the first projected month only.
	OneTimeExpense float64
	// SwitchToSalaried pins projected income at the trailing mean with a
	// payroll deposit every month.
	SwitchToSalaried bool
	// LoseIncomeStream drops the largest income source's contribution
	// for all projected months.
	LoseIncomeStream bool
}

// MergeModifiers folds a list of modifiers into their net effect.
func MergeModifiers(modifiers []ScenarioModifier) ScenarioModifier {
	var net ScenarioModifier
	for _, m := range modifiers {
		net.IncomeChangePct += m.IncomeChangePct
		net.ExtraMonthlySavings += m.ExtraMonthlySavings
		net.ExtraMonthlyDebtPayment += m.ExtraMonthlyDebtPayment
		net.MonthlyExpenseDelta += m.MonthlyExpenseDelta
		net.SubscriptionsCancelled += m.SubscriptionsCancelled
		net.OneTimeExpense += m.OneTimeExpense
		net.SwitchToSalaried = net.SwitchToSalaried || m.SwitchToSalaried
		net.LoseIncomeStream = net.LoseIncomeStream || m.LoseIncomeStream
	}
	return net
}

// TimeMachinePreset is a named modifier bundle users can pick instead of
// composing their own.
type TimeMachinePreset struct {
	ID          string
	Label       string
	Description string
	Modifier    ScenarioModifier
}
