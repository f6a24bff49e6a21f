package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewScoreSet(t *testing.T) {
	t.Run("clamps out-of-range inputs", func(t *testing.T) {
		s := NewScoreSet(-20, 150, 50, 50, 50)
		require.Equal(t, 0.0, s.IncomeStability)
		require.Equal(t, 100.0, s.SpendingDiscipline)
	})

	t.Run("overall is the fixed weighted sum", func(t *testing.T) {
		s := NewScoreSet(80, 60, 40, 20, 100)
		require.Equal(t, 0.25*80+0.20*60+0.20*40+0.20*20+0.15*100, s.Overall)
	})

	t.Run("weights sum to one", func(t *testing.T) {
		total := WeightIncomeStability + WeightSpendingDiscipline +
			WeightDebtTrajectory + WeightFinancialResilience + WeightGrowthMomentum
		require.InDelta(t, 1.0, total, 1e-12)
	})

	t.Run("neutral set is all midpoints", func(t *testing.T) {
		s := NeutralScoreSet()
		require.Equal(t, 50.0, s.IncomeStability)
		require.Equal(t, 50.0, s.Overall)
	})
}

func Test_Category(t *testing.T) {
	t.Run("essential set matches the fixed enumeration", func(t *testing.T) {
		essentials := map[Category]bool{
			CategoryRent:           true,
			CategoryGroceries:      true,
			CategoryUtilities:      true,
			CategoryInsurance:      true,
			CategoryMedical:        true,
			CategoryTransportation: true,
			CategoryDebtPayment:    true,
		}
		for category := range allCategories {
			require.Equal(t, essentials[category], category.IsEssential(), "category %s", category)
		}
	})

	t.Run("unknown categories are rejected", func(t *testing.T) {
		_, err := NewCategory("yachts")
		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr)

		c, err := NewCategory("groceries")
		require.NoError(t, err)
		require.Equal(t, CategoryGroceries, c)
	})
}

func Test_MergeModifiers(t *testing.T) {
	net := MergeModifiers([]ScenarioModifier{
		{ExtraMonthlySavings: 100, IncomeChangePct: 10},
		{ExtraMonthlySavings: 50, SwitchToSalaried: true},
		{SubscriptionsCancelled: 2, LoseIncomeStream: true},
	})

	require.Equal(t, 150.0, net.ExtraMonthlySavings)
	require.Equal(t, 10.0, net.IncomeChangePct)
	require.Equal(t, 2, net.SubscriptionsCancelled)
	require.True(t, net.SwitchToSalaried)
	require.True(t, net.LoseIncomeStream)
}
