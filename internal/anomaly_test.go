package internal

import (
	"sort"
	"testing"

	"finhealth/internal/domain"

	"github.com/stretchr/testify/require"
)

func findByCategory(findings []domain.AnomalyFinding, category domain.AnomalyCategory) []domain.AnomalyFinding {
	out := []domain.AnomalyFinding{}
	for _, f := range findings {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

func Test_AnomalyDetector(t *testing.T) {
	detector := AnomalyDetector{}

	t.Run("empty input yields empty report", func(t *testing.T) {
		report := detector.Detect(nil, nil)
		require.Empty(t, report.Findings)
		require.False(t, report.GeneratedAt.IsZero())
	})

	t.Run("spending spike against trailing average", func(t *testing.T) {
		transactions := []domain.Transaction{}
		for month := 1; month <= 3; month++ {
			transactions = append(transactions,
				newTx(2024, month, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
				newTx(2024, month, 5, 1000, "Grocer", domain.CategoryGroceries, false),
			)
		}
		// 2024-04 spends 2.5x the trailing average
		transactions = append(transactions,
			newTx(2024, 4, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
			newTx(2024, 4, 5, 2500, "Jeweler", domain.CategoryShopping, false),
		)

		months := AggregateMonthly(transactions)
		report := detector.Detect(months, transactions)

		spikes := findByCategory(report.Findings, domain.AnomalySpendingSpike)
		require.Len(t, spikes, 1)
		require.Equal(t, "2024-04", spikes[0].Month)
		require.Equal(t, domain.SeverityHigh, spikes[0].Severity)
		require.Contains(t, spikes[0].Rationale, "trailing average")
	})

	t.Run("new recurring merchant references its first transaction", func(t *testing.T) {
		streamTx := newTx(2024, 3, 10, 16, "StreamCo", domain.CategorySubscription, false)
		streamTx.IsRecurring = true
		gym := newTx(2024, 1, 2, 40, "Gym", domain.CategoryOther, false)
		gym.IsRecurring = true

		transactions := []domain.Transaction{
			newTx(2024, 1, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
			gym,
			newTx(2024, 2, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
			newTx(2024, 3, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
			streamTx,
		}

		months := AggregateMonthly(transactions)
		report := detector.Detect(months, transactions)

		newMerchants := findByCategory(report.Findings, domain.AnomalyNewRecurringMerchant)
		require.Len(t, newMerchants, 1)
		require.Equal(t, "2024-03", newMerchants[0].Month)
		require.NotNil(t, newMerchants[0].TransactionID)
		require.Equal(t, streamTx.ID, *newMerchants[0].TransactionID)
	})

	t.Run("disappearing payroll deposit is high severity", func(t *testing.T) {
		transactions := []domain.Transaction{
			newTx(2024, 1, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
			newTx(2024, 2, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
			newTx(2024, 3, 1, 100, "Etsy Shop", domain.CategoryIncome, true),
			newTx(2024, 3, 5, 500, "Grocer", domain.CategoryGroceries, false),
		}

		months := AggregateMonthly(transactions)
		report := detector.Detect(months, transactions)

		missing := findByCategory(report.Findings, domain.AnomalyMissingDeposit)
		require.Len(t, missing, 1)
		require.Equal(t, "2024-03", missing[0].Month)
		require.Equal(t, domain.SeverityHigh, missing[0].Severity)
		require.Contains(t, missing[0].Rationale, "acme payroll")
	})

	t.Run("overdraft after a clean streak", func(t *testing.T) {
		transactions := []domain.Transaction{}
		for month := 1; month <= 3; month++ {
			transactions = append(transactions,
				newTx(2024, month, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
				newTx(2024, month, 5, 1000, "Grocer", domain.CategoryGroceries, false),
			)
		}
		// blow through the accumulated 6000 buffer
		transactions = append(transactions,
			newTx(2024, 4, 5, 9500, "Hospital", domain.CategoryMedical, false),
		)

		months := AggregateMonthly(transactions)
		report := detector.Detect(months, transactions)

		overdrafts := findByCategory(report.Findings, domain.AnomalyOverdraft)
		require.Len(t, overdrafts, 1)
		require.Equal(t, "2024-04", overdrafts[0].Month)
		require.Equal(t, domain.SeverityHigh, overdrafts[0].Severity)
	})

	t.Run("no overdraft finding without a prior streak", func(t *testing.T) {
		transactions := []domain.Transaction{
			newTx(2024, 1, 1, 100, "Gig", domain.CategoryIncome, true),
			newTx(2024, 1, 5, 500, "Grocer", domain.CategoryGroceries, false),
		}

		months := AggregateMonthly(transactions)
		report := detector.Detect(months, transactions)
		require.Empty(t, findByCategory(report.Findings, domain.AnomalyOverdraft))
	})

	t.Run("findings are ordered chronologically regardless of input order", func(t *testing.T) {
		recurring := newTx(2024, 2, 10, 16, "StreamCo", domain.CategorySubscription, false)
		recurring.IsRecurring = true

		transactions := []domain.Transaction{
			// big spike late in the window, listed first
			newTx(2024, 5, 5, 9000, "Jeweler", domain.CategoryShopping, false),
			recurring,
		}
		for month := 1; month <= 4; month++ {
			transactions = append(transactions,
				newTx(2024, month, 1, 3000, "Acme Payroll", domain.CategoryIncome, true),
				newTx(2024, month, 5, 1000, "Grocer", domain.CategoryGroceries, false),
			)
		}

		months := AggregateMonthly(transactions)
		report := detector.Detect(months, transactions)
		require.NotEmpty(t, report.Findings)

		monthsSeen := make([]string, 0, len(report.Findings))
		for _, f := range report.Findings {
			monthsSeen = append(monthsSeen, f.Month)
		}
		require.True(t, sort.StringsAreSorted(monthsSeen))
	})
}
