package internal

import (
	"testing"
	"time"

	"finhealth/internal/calculator"
	"finhealth/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func stressFixtureHistory() []domain.MonthlySummary {
	transactions := []domain.Transaction{}
	for month := 1; month <= 6; month++ {
		transactions = append(transactions,
			newTx(2024, month, 1, 5000, "Acme Payroll", domain.CategoryIncome, true),
			newTx(2024, month, 3, 1500, "Downtown Lofts", domain.CategoryRent, false),
			newTx(2024, month, 5, 400, "Card Payment", domain.CategoryDebtPayment, false),
			newTx(2024, month, 8, 300, "Vault", domain.CategorySavingsTransfer, false),
			newTx(2024, month, 12, 600, "Steakhouse", domain.CategoryDining, false),
		)
	}
	return AggregateMonthly(transactions)
}

func Test_StressTestHandler(t *testing.T) {
	handler := StressTestHandler{ScoreService: calculator.NewScoreService()}

	t.Run("catalog is enumerable without running", func(t *testing.T) {
		scenarios := handler.Scenarios()
		require.Len(t, scenarios, 4)
		for _, s := range scenarios {
			require.NotEmpty(t, s.ID)
			require.NotEmpty(t, s.Label)
			require.NotEmpty(t, s.Description)
		}
	})

	t.Run("unknown scenario id", func(t *testing.T) {
		history := stressFixtureHistory()
		result, err := handler.Run(RunStressTestInput{
			ScenarioID:     "asteroid_strike",
			History:        history,
			BaselineScores: handler.ScoreService.Calculate(history),
		})
		require.Nil(t, result)

		var notFound domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Contains(t, err.Error(), "asteroid_strike")
	})

	t.Run("running twice yields identical output", func(t *testing.T) {
		history := stressFixtureHistory()
		baseline := handler.ScoreService.Calculate(history)

		first, err := handler.Run(RunStressTestInput{
			ScenarioID:     "income_loss_3mo",
			History:        history,
			BaselineScores: baseline,
		})
		require.NoError(t, err)
		second, err := handler.Run(RunStressTestInput{
			ScenarioID:     "income_loss_3mo",
			History:        history,
			BaselineScores: baseline,
		})
		require.NoError(t, err)

		// GeneratedAt is report metadata, not scored data
		require.Equal(t, "", cmp.Diff(
			first, second,
			cmpopts.IgnoreFields(domain.StressResult{}, "GeneratedAt"),
		))
	})

	t.Run("original history is never mutated", func(t *testing.T) {
		history := stressFixtureHistory()
		before := domain.CopyMonthlySummaries(history)

		_, err := handler.Run(RunStressTestInput{
			ScenarioID:     "rate_shock",
			History:        history,
			BaselineScores: handler.ScoreService.Calculate(history),
		})
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(before, history))
	})

	t.Run("income loss drags scores down", func(t *testing.T) {
		history := stressFixtureHistory()
		baseline := handler.ScoreService.Calculate(history)

		result, err := handler.Run(RunStressTestInput{
			ScenarioID:     "income_loss_3mo",
			History:        history,
			BaselineScores: baseline,
		})
		require.NoError(t, err)
		require.Less(t, result.StressedScores.Overall, baseline.Overall)
		require.Negative(t, result.Deltas.Overall)
		require.NotEmpty(t, result.Narrative)
		require.False(t, result.GeneratedAt.IsZero())
		require.WithinDuration(t, time.Now().UTC(), result.GeneratedAt, time.Minute)
	})

	t.Run("emergency expense amount is configurable", func(t *testing.T) {
		history := stressFixtureHistory()
		baseline := handler.ScoreService.Calculate(history)

		amount := 30000.0
		result, err := handler.Run(RunStressTestInput{
			ScenarioID:     "emergency_expense",
			History:        history,
			BaselineScores: baseline,
			Amount:         &amount,
		})
		require.NoError(t, err)
		require.Less(t, result.StressedScores.FinancialResilience, baseline.FinancialResilience)
	})

	t.Run("non-positive emergency amount is rejected", func(t *testing.T) {
		history := stressFixtureHistory()
		amount := -5.0
		_, err := handler.Run(RunStressTestInput{
			ScenarioID:     "emergency_expense",
			History:        history,
			BaselineScores: handler.ScoreService.Calculate(history),
			Amount:         &amount,
		})

		var validationErr domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("empty history degrades gracefully", func(t *testing.T) {
		result, err := handler.Run(RunStressTestInput{
			ScenarioID:     "income_drop_20",
			History:        nil,
			BaselineScores: domain.NeutralScoreSet(),
		})
		require.NoError(t, err)
		require.Equal(t, domain.NeutralScoreSet(), result.StressedScores)
	})
}
