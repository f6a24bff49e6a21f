package calculator

import (
	"finhealth/internal/domain"

	"github.com/montanaflynn/stats"
)

// ScoreService derives the five-dimension financial health score from an
// ordered monthly history. It is stateless; every call recomputes from
// scratch.
type ScoreService struct{}

func NewScoreService() ScoreService {
	return ScoreService{}
}

// Calculate scores the given history. Degenerate input (zero or one
// months, or an all-zero history) yields the neutral score set rather
// than an error. All returned values are finite and within [0, 100];
// the overall score is always the fixed weighted sum of the five
// dimensions.
func (s ScoreService) Calculate(months []domain.MonthlySummary) domain.ScoreSet {
	if len(months) < 2 || allZero(months) {
		return domain.NeutralScoreSet()
	}

	deposits := make([]float64, len(months))
	spending := make([]float64, len(months))
	balances := make([]float64, len(months))
	for i, m := range months {
		deposits[i] = m.TotalDeposits.InexactFloat64()
		spending[i] = m.TotalSpending.InexactFloat64()
		balances[i] = m.EndBalance.InexactFloat64()
	}

	return domain.NewScoreSet(
		incomeStability(months, deposits),
		spendingDiscipline(months),
		debtTrajectory(months),
		financialResilience(months, spending),
		growthMomentum(months, deposits, balances),
	)
}

func allZero(months []domain.MonthlySummary) bool {
	for _, m := range months {
		if !m.TotalDeposits.IsZero() || !m.TotalSpending.IsZero() {
			return false
		}
	}
	return true
}

// incomeStability rewards low month-to-month deposit variance and
// consistent payroll presence. The variance term uses the coefficient of
// variation so the curve is scale-free.
func incomeStability(months []domain.MonthlySummary, deposits []float64) float64 {
	mean, _ := stats.Mean(deposits)

	cv := 1.0
	if mean > 0 {
		stdev, err := stats.StandardDeviationSample(deposits)
		if err == nil {
			cv = stdev / mean
		}
	}
	if cv > 1 {
		cv = 1
	}

	payrollMonths := 0
	for _, m := range months {
		if m.HasPayrollDeposit {
			payrollMonths++
		}
	}
	payrollRatio := float64(payrollMonths) / float64(len(months))

	return (1-cv)*100*0.7 + payrollRatio*100*0.3
}

// spendingDiscipline rewards a low discretionary-to-deposit ratio and
// penalizes every overdraft month. Strictly more overdrafts can never
// raise this score.
func spendingDiscipline(months []domain.MonthlySummary) float64 {
	var totalDeposits, totalDiscretionary float64
	overdrafts := 0
	for _, m := range months {
		totalDeposits += m.TotalDeposits.InexactFloat64()
		totalDiscretionary += m.DiscretionarySpending.InexactFloat64()
		if m.HadOverdraft {
			overdrafts++
		}
	}

	ratio := spendRatio(totalDiscretionary, totalDeposits)
	return 100 - 200*ratio - 15*float64(overdrafts)
}

// debtTrajectory rewards a low debt-payment-to-income ratio, with a
// small adjustment for the direction the ratio is heading.
func debtTrajectory(months []domain.MonthlySummary) float64 {
	var totalDeposits, totalDebt float64
	for _, m := range months {
		totalDeposits += m.TotalDeposits.InexactFloat64()
		totalDebt += m.DebtPayments.InexactFloat64()
	}
	ratio := spendRatio(totalDebt, totalDeposits)

	trendAdj := 0.0
	if len(months) >= 4 {
		mid := len(months) / 2
		first := halfDebtRatio(months[:mid])
		second := halfDebtRatio(months[mid:])
		if second < first {
			trendAdj = 10
		} else if second > first {
			trendAdj = -10
		}
	}

	return 100 - 250*ratio + trendAdj
}

func halfDebtRatio(months []domain.MonthlySummary) float64 {
	var deposits, debt float64
	for _, m := range months {
		deposits += m.TotalDeposits.InexactFloat64()
		debt += m.DebtPayments.InexactFloat64()
	}
	return spendRatio(debt, deposits)
}

// financialResilience rewards months of runway in the final balance and
// multiple income sources.
func financialResilience(months []domain.MonthlySummary, spending []float64) float64 {
	finalBalance := months[len(months)-1].EndBalance.InexactFloat64()
	avgSpend, _ := stats.Mean(spending)

	runway := 0.0
	if finalBalance > 0 {
		if avgSpend > 0 {
			runway = finalBalance / avgSpend
		} else {
			// positive balance with no spending at all is full runway
			runway = 6
		}
	}
	if runway > 6 {
		runway = 6
	}

	maxSources := 0
	for _, m := range months {
		if m.IncomeSourceCount > maxSources {
			maxSources = m.IncomeSourceCount
		}
	}
	if maxSources > 3 {
		maxSources = 3
	}

	return runway/6*70 + float64(maxSources)*10
}

// growthMomentum rewards a rising balance trend and a rising savings
// transfer trend.
func growthMomentum(months []domain.MonthlySummary, deposits, balances []float64) float64 {
	slope := regressionSlope(balances)
	level, _ := stats.Mean(absValues(balances))
	slopeNorm := 0.0
	if level > 0 {
		slopeNorm = clampUnit(slope / level)
	}

	meanDeposits, _ := stats.Mean(deposits)
	savingsNorm := 0.0
	if meanDeposits > 0 {
		mid := len(months) / 2
		first := avgSavings(months[:mid])
		second := avgSavings(months[mid:])
		savingsNorm = clampUnit((second - first) / meanDeposits)
	}

	return 50 + 30*slopeNorm + 20*savingsNorm
}

func avgSavings(months []domain.MonthlySummary) float64 {
	if len(months) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range months {
		total += m.SavingsTransfers.InexactFloat64()
	}
	return total / float64(len(months))
}

// regressionSlope fits a least-squares line through the series indexed by
// position and returns its per-month slope.
func regressionSlope(series []float64) float64 {
	coords := make(stats.Series, len(series))
	for i, v := range series {
		coords[i] = stats.Coordinate{X: float64(i), Y: v}
	}
	fitted, err := stats.LinearRegression(coords)
	if err != nil || len(fitted) < 2 {
		return 0
	}
	return (fitted[len(fitted)-1].Y - fitted[0].Y) / float64(len(fitted)-1)
}

// spendRatio guards the zero-income edge so no curve can produce NaN.
func spendRatio(spent, deposits float64) float64 {
	if deposits <= 0 {
		if spent > 0 {
			return 1
		}
		return 0
	}
	ratio := spent / deposits
	if ratio > 1 {
		return 1
	}
	return ratio
}

func absValues(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
