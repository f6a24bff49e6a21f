package calculator

import (
	"fmt"
	"testing"

	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func steadyMonth(month string, deposits, essential, discretionary, debt, savings float64, balance float64, payroll bool) domain.MonthlySummary {
	return domain.MonthlySummary{
		Month:                 month,
		TotalDeposits:         decimal.NewFromFloat(deposits),
		TotalSpending:         decimal.NewFromFloat(essential + discretionary),
		EssentialSpending:     decimal.NewFromFloat(essential),
		DiscretionarySpending: decimal.NewFromFloat(discretionary),
		DebtPayments:          decimal.NewFromFloat(debt),
		SavingsTransfers:      decimal.NewFromFloat(savings),
		EndBalance:            decimal.NewFromFloat(balance),
		IncomeSourceCount:     1,
		HasPayrollDeposit:     payroll,
	}
}

func healthyHistory(n int) []domain.MonthlySummary {
	months := make([]domain.MonthlySummary, 0, n)
	balance := 0.0
	for i := 0; i < n; i++ {
		balance += 5000 - 3000
		months = append(months, steadyMonth(
			fmt.Sprintf("2024-%02d", i+1),
			5000, 2200, 800, 200, 400, balance, true,
		))
	}
	return months
}

func Test_Calculate(t *testing.T) {
	svc := NewScoreService()

	t.Run("empty history is neutral", func(t *testing.T) {
		scores := svc.Calculate(nil)
		require.Equal(t, domain.NeutralScoreSet(), scores)
		require.Equal(t, 50.0, scores.Overall)
	})

	t.Run("single month is neutral", func(t *testing.T) {
		scores := svc.Calculate(healthyHistory(1))
		require.Equal(t, domain.NeutralScoreSet(), scores)
	})

	t.Run("all-zero history is neutral", func(t *testing.T) {
		months := []domain.MonthlySummary{
			{Month: "2024-01"},
			{Month: "2024-02"},
			{Month: "2024-03"},
		}
		scores := svc.Calculate(months)
		require.Equal(t, domain.NeutralScoreSet(), scores)
	})

	t.Run("all scores bounded", func(t *testing.T) {
		histories := [][]domain.MonthlySummary{
			healthyHistory(6),
			healthyHistory(2),
			{
				steadyMonth("2024-01", 100, 5000, 4000, 3000, 0, -8900, false),
				steadyMonth("2024-02", 0, 5000, 4000, 3000, 0, -17900, false),
			},
		}
		for _, history := range histories {
			scores := svc.Calculate(history)
			for _, v := range []float64{
				scores.IncomeStability,
				scores.SpendingDiscipline,
				scores.DebtTrajectory,
				scores.FinancialResilience,
				scores.GrowthMomentum,
				scores.Overall,
			} {
				require.GreaterOrEqual(t, v, 0.0)
				require.LessOrEqual(t, v, 100.0)
			}
		}
	})

	t.Run("overall is the fixed weighted sum", func(t *testing.T) {
		scores := svc.Calculate(healthyHistory(6))
		expected := 0.25*scores.IncomeStability +
			0.20*scores.SpendingDiscipline +
			0.20*scores.DebtTrajectory +
			0.20*scores.FinancialResilience +
			0.15*scores.GrowthMomentum
		require.Equal(t, expected, scores.Overall)
	})

	t.Run("more overdrafts never raise spending discipline", func(t *testing.T) {
		clean := healthyHistory(6)
		withOverdrafts := healthyHistory(6)
		withOverdrafts[2].HadOverdraft = true
		withOverdrafts[4].HadOverdraft = true

		require.LessOrEqual(
			t,
			svc.Calculate(withOverdrafts).SpendingDiscipline,
			svc.Calculate(clean).SpendingDiscipline,
		)
	})

	t.Run("higher income variance never raises income stability", func(t *testing.T) {
		steady := healthyHistory(6)
		volatile := healthyHistory(6)
		for i := range volatile {
			if i%2 == 0 {
				volatile[i].TotalDeposits = decimal.NewFromInt(9000)
			} else {
				volatile[i].TotalDeposits = decimal.NewFromInt(1000)
			}
		}

		require.LessOrEqual(
			t,
			svc.Calculate(volatile).IncomeStability,
			svc.Calculate(steady).IncomeStability,
		)
	})

	t.Run("heavier debt load lowers debt trajectory", func(t *testing.T) {
		light := healthyHistory(6)
		heavy := healthyHistory(6)
		for i := range heavy {
			heavy[i].DebtPayments = decimal.NewFromInt(2000)
		}

		require.Less(
			t,
			svc.Calculate(heavy).DebtTrajectory,
			svc.Calculate(light).DebtTrajectory,
		)
	})

	t.Run("zero-income spender is not rewarded", func(t *testing.T) {
		months := []domain.MonthlySummary{
			steadyMonth("2024-01", 0, 500, 1500, 0, 0, -2000, false),
			steadyMonth("2024-02", 0, 500, 1500, 0, 0, -4000, false),
		}
		months[0].HadOverdraft = true
		months[1].HadOverdraft = true

		scores := svc.Calculate(months)
		require.Equal(t, 0.0, scores.SpendingDiscipline)
		require.Less(t, scores.IncomeStability, domain.NeutralScore)
	})
}
