package domain

// fixed dimension weights - they must sum to 1.0
const (
	WeightIncomeStability     = 0.25
	WeightSpendingDiscipline  = 0.20
	WeightDebtTrajectory      = 0.20
	WeightFinancialResilience = 0.20
	WeightGrowthMomentum      = 0.15
)

// NeutralScore is returned for every dimension when the history is too
// thin to say anything (empty, single month, or all zeros).
const NeutralScore = 50.0

type ScoreSet struct {
	IncomeStability     float64
	SpendingDiscipline  float64
	DebtTrajectory      float64
	FinancialResilience float64
	GrowthMomentum      float64
	Overall             float64
}

// NewScoreSet clamps each sub-score to [0, 100] and derives the overall
// score from the fixed weights. This is the only place the overall score
// is computed.
func NewScoreSet(incomeStability, spendingDiscipline, debtTrajectory, financialResilience, growthMomentum float64) ScoreSet {
	s := ScoreSet{
		IncomeStability:     ClampScore(incomeStability),
		SpendingDiscipline:  ClampScore(spendingDiscipline),
		DebtTrajectory:      ClampScore(debtTrajectory),
		FinancialResilience: ClampScore(financialResilience),
		GrowthMomentum:      ClampScore(growthMomentum),
	}
	s.Overall = WeightIncomeStability*s.IncomeStability +
		WeightSpendingDiscipline*s.SpendingDiscipline +
		WeightDebtTrajectory*s.DebtTrajectory +
		WeightFinancialResilience*s.FinancialResilience +
		WeightGrowthMomentum*s.GrowthMomentum
	return s
}

func NeutralScoreSet() ScoreSet {
	return NewScoreSet(NeutralScore, NeutralScore, NeutralScore, NeutralScore, NeutralScore)
}

func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ScoreDeltas holds per-dimension differences between two score sets.
// Values may be negative; they are not clamped.
type ScoreDeltas struct {
	IncomeStability     float64
	SpendingDiscipline  float64
	DebtTrajectory      float64
	FinancialResilience float64
	GrowthMomentum      float64
	Overall             float64
}

func (s ScoreSet) DeltasFrom(baseline ScoreSet) ScoreDeltas {
	return ScoreDeltas{
		IncomeStability:     s.IncomeStability - baseline.IncomeStability,
		SpendingDiscipline:  s.SpendingDiscipline - baseline.SpendingDiscipline,
		DebtTrajectory:      s.DebtTrajectory - baseline.DebtTrajectory,
		FinancialResilience: s.FinancialResilience - baseline.FinancialResilience,
		GrowthMomentum:      s.GrowthMomentum - baseline.GrowthMomentum,
		Overall:             s.Overall - baseline.Overall,
	}
}
