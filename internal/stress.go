package internal

import (
	"fmt"
	"time"

	"finhealth/internal/calculator"
	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultEmergencyExpense = 2000

// stressScenarios is the static catalog. IDs are stable and part of the
// external contract.
var stressScenarios = []domain.StressScenario{
	{
		ID:          "income_loss_3mo",
		Label:       "Lose primary income for 3 months",
		Description: "Zeroes all income deposits for the most recent 3 months of history and replays the balance from there.",
	},
	{
		ID:          "emergency_expense",
		Label:       "One-time emergency expense",
		Description: "Drops a single unplanned expense (default $2,000, configurable) into the most recent month.",
	},
	{
		ID:          "rate_shock",
		Label:       "Interest-rate shock on variable debt",
		Description: "Raises every month's debt payments by 25%, as if variable rates repriced across the whole window.",
	},
	{
		ID:          "income_drop_20",
		Label:       "Sustained 20% income cut",
		Description: "Reduces every month's deposits by 20%, modelling a pay cut or reduced hours.",
	},
}

// StressTestHandler replays a fixed perturbation recipe against a copy of
// the monthly history and rescores the result. It never mutates the
// caller's history and has no randomness; two runs with identical inputs
// produce identical scores, deltas and narrative.
type StressTestHandler struct {
	ScoreService calculator.ScoreService
}

// Scenarios returns the catalog without running anything.
func (h StressTestHandler) Scenarios() []domain.StressScenario {
	out := make([]domain.StressScenario, len(stressScenarios))
	copy(out, stressScenarios)
	return out
}

type RunStressTestInput struct {
	ScenarioID     string
	History        []domain.MonthlySummary
	BaselineScores domain.ScoreSet
	// Amount parameterizes scenarios that take one, currently only
	// emergency_expense. Nil means the scenario default.
	Amount *float64
}

func (h StressTestHandler) Run(in RunStressTestInput) (*domain.StressResult, error) {
	scenario, err := findScenario(in.ScenarioID)
	if err != nil {
		return nil, err
	}

	perturbed := domain.CopyMonthlySummaries(in.History)
	switch scenario.ID {
	case "income_loss_3mo":
		applyIncomeLoss(perturbed, 3)
	case "emergency_expense":
		amount := float64(defaultEmergencyExpense)
		if in.Amount != nil {
			if *in.Amount <= 0 {
				return nil, domain.NewValidationError("emergency expense amount must be positive, got %v", *in.Amount)
			}
			amount = *in.Amount
		}
		applyOneTimeExpense(perturbed, decimal.NewFromFloat(amount))
	case "rate_shock":
		applyDebtRepricing(perturbed, decimal.NewFromFloat(0.25))
	case "income_drop_20":
		applyIncomeCut(perturbed, decimal.NewFromFloat(0.20))
	default:
		// catalog and recipes must stay in sync
		return nil, fmt.Errorf("scenario %q has no recipe", scenario.ID)
	}
	RebuildBalances(perturbed)

	stressed := h.ScoreService.Calculate(perturbed)
	deltas := stressed.DeltasFrom(in.BaselineScores)

	return &domain.StressResult{
		ScenarioID:     scenario.ID,
		BaselineScores: in.BaselineScores,
		StressedScores: stressed,
		Deltas:         deltas,
		Narrative:      buildNarrative(*scenario, in.BaselineScores, stressed, deltas),
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

func findScenario(id string) (*domain.StressScenario, error) {
	for i := range stressScenarios {
		if stressScenarios[i].ID == id {
			return &stressScenarios[i], nil
		}
	}
	return nil, domain.NotFoundError{Resource: "stress scenario", ID: id}
}

func applyIncomeLoss(months []domain.MonthlySummary, lossMonths int) {
	start := len(months) - lossMonths
	if start < 0 {
		start = 0
	}
	for i := start; i < len(months); i++ {
		months[i].TotalDeposits = decimal.Zero
		months[i].IncomeSourceCount = 0
		months[i].HasPayrollDeposit = false
	}
}

func applyOneTimeExpense(months []domain.MonthlySummary, amount decimal.Decimal) {
	if len(months) == 0 {
		return
	}
	last := &months[len(months)-1]
	last.DiscretionarySpending = last.DiscretionarySpending.Add(amount)
	last.TotalSpending = last.TotalSpending.Add(amount)
}

func applyDebtRepricing(months []domain.MonthlySummary, rateIncrease decimal.Decimal) {
	for i := range months {
		extra := months[i].DebtPayments.Mul(rateIncrease)
		months[i].DebtPayments = months[i].DebtPayments.Add(extra)
		// debt payments are essential spending
		months[i].EssentialSpending = months[i].EssentialSpending.Add(extra)
		months[i].TotalSpending = months[i].TotalSpending.Add(extra)
	}
}

func applyIncomeCut(months []domain.MonthlySummary, cut decimal.Decimal) {
	for i := range months {
		months[i].TotalDeposits = months[i].TotalDeposits.Sub(months[i].TotalDeposits.Mul(cut))
	}
}

func buildNarrative(scenario domain.StressScenario, baseline, stressed domain.ScoreSet, deltas domain.ScoreDeltas) string {
	if deltas.Overall == 0 {
		return fmt.Sprintf("%s: no material impact on your overall score (%.1f).", scenario.Label, baseline.Overall)
	}

	direction := "drops"
	if deltas.Overall > 0 {
		direction = "rises"
	}
	dimension, dimensionDelta := hardestHitDimension(deltas)
	return fmt.Sprintf(
		"%s: your overall score %s %.1f points, from %.1f to %.1f. The biggest move is in %s (%+.1f).",
		scenario.Label, direction, abs(deltas.Overall), baseline.Overall, stressed.Overall, dimension, dimensionDelta,
	)
}

func hardestHitDimension(deltas domain.ScoreDeltas) (string, float64) {
	dims := []struct {
		name  string
		delta float64
	}{
		{"income stability", deltas.IncomeStability},
		{"spending discipline", deltas.SpendingDiscipline},
		{"debt trajectory", deltas.DebtTrajectory},
		{"financial resilience", deltas.FinancialResilience},
		{"growth momentum", deltas.GrowthMomentum},
	}
	worst := dims[0]
	for _, d := range dims[1:] {
		if abs(d.delta) > abs(worst.delta) {
			worst = d
		}
	}
	return worst.name, worst.delta
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
