package internal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// spending above this multiple of the trailing average is flagged
	spendingSpikeThreshold     = 1.5
	spendingSpikeHighThreshold = 2.0
	// months an income source must appear in before its absence is notable
	expectedDepositMinMonths = 2
	// non-overdraft months required before an overdraft counts as a break
	overdraftCleanStreak = 3
)

// AnomalyDetector scans the monthly history plus raw transactions for
// notable deviations. Input transaction order doesn't matter; findings
// come back ordered chronologically.
type AnomalyDetector struct{}

func (d AnomalyDetector) Detect(months []domain.MonthlySummary, transactions []domain.Transaction) domain.AnomalyReport {
	findings := []domain.AnomalyFinding{}
	findings = append(findings, detectSpendingSpikes(months)...)
	findings = append(findings, detectNewRecurringMerchants(months, transactions)...)
	findings = append(findings, detectMissingDeposits(months, transactions)...)
	findings = append(findings, detectOverdraftBreaks(months)...)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Month != findings[j].Month {
			return findings[i].Month < findings[j].Month
		}
		if findings[i].Category != findings[j].Category {
			return findings[i].Category < findings[j].Category
		}
		return findings[i].Rationale < findings[j].Rationale
	})

	return domain.AnomalyReport{
		Findings:    findings,
		GeneratedAt: time.Now().UTC(),
	}
}

func detectSpendingSpikes(months []domain.MonthlySummary) []domain.AnomalyFinding {
	findings := []domain.AnomalyFinding{}
	trailingTotal := decimal.Zero
	for i, m := range months {
		if i > 0 {
			trailingAvg := trailingTotal.Div(decimal.NewFromInt(int64(i)))
			if trailingAvg.IsPositive() {
				threshold := trailingAvg.Mul(decimal.NewFromFloat(spendingSpikeThreshold))
				if m.TotalSpending.GreaterThan(threshold) {
					severity := domain.SeverityMedium
					if m.TotalSpending.GreaterThanOrEqual(trailingAvg.Mul(decimal.NewFromFloat(spendingSpikeHighThreshold))) {
						severity = domain.SeverityHigh
					}
					findings = append(findings, domain.AnomalyFinding{
						Category: domain.AnomalySpendingSpike,
						Severity: severity,
						Month:    m.Month,
						Rationale: fmt.Sprintf(
							"spending of %s is more than %.1fx the trailing average of %s",
							m.TotalSpending.StringFixed(2), spendingSpikeThreshold, trailingAvg.StringFixed(2),
						),
					})
				}
			}
		}
		trailingTotal = trailingTotal.Add(m.TotalSpending)
	}
	return findings
}

// detectNewRecurringMerchants flags the first charge of any recurring
// merchant that was absent from every earlier month of the history.
func detectNewRecurringMerchants(months []domain.MonthlySummary, transactions []domain.Transaction) []domain.AnomalyFinding {
	if len(months) == 0 {
		return nil
	}
	firstMonth := months[0].Month

	// earliest transaction per recurring merchant, chosen deterministically
	// regardless of input order
	firstSeen := map[string]domain.Transaction{}
	for _, tx := range transactions {
		if tx.IsIncomeDeposit || !tx.IsRecurring {
			continue
		}
		merchant := strings.ToLower(strings.TrimSpace(tx.Merchant))
		if merchant == "" {
			continue
		}
		existing, ok := firstSeen[merchant]
		if !ok || tx.Date.Before(existing.Date) ||
			(tx.Date.Equal(existing.Date) && tx.ID.String() < existing.ID.String()) {
			firstSeen[merchant] = tx
		}
	}

	findings := []domain.AnomalyFinding{}
	for merchant, tx := range firstSeen {
		if tx.MonthKey() == firstMonth {
			continue
		}
		id := tx.ID
		findings = append(findings, domain.AnomalyFinding{
			Category:      domain.AnomalyNewRecurringMerchant,
			Severity:      domain.SeverityLow,
			Month:         tx.MonthKey(),
			TransactionID: &id,
			Rationale:     fmt.Sprintf("recurring charge from %q first appeared this month", merchant),
		})
	}
	return findings
}

// detectMissingDeposits flags the first month an established income
// source stops depositing.
func detectMissingDeposits(months []domain.MonthlySummary, transactions []domain.Transaction) []domain.AnomalyFinding {
	if len(months) < 2 {
		return nil
	}

	monthIndex := map[string]int{}
	for i, m := range months {
		monthIndex[m.Month] = i
	}

	presence := map[string]map[int]struct{}{}
	for _, tx := range transactions {
		if !tx.IsIncomeDeposit {
			continue
		}
		merchant := strings.ToLower(strings.TrimSpace(tx.Merchant))
		if merchant == "" {
			continue
		}
		idx, ok := monthIndex[tx.MonthKey()]
		if !ok {
			continue
		}
		if presence[merchant] == nil {
			presence[merchant] = map[int]struct{}{}
		}
		presence[merchant][idx] = struct{}{}
	}

	findings := []domain.AnomalyFinding{}
	for merchant, seen := range presence {
		if len(seen) < expectedDepositMinMonths {
			continue
		}
		lastSeen := -1
		for idx := range seen {
			if idx > lastSeen {
				lastSeen = idx
			}
		}
		if lastSeen >= len(months)-1 {
			continue
		}

		severity := domain.SeverityMedium
		for _, indicator := range payrollIndicators {
			if strings.Contains(merchant, indicator) {
				severity = domain.SeverityHigh
				break
			}
		}
		findings = append(findings, domain.AnomalyFinding{
			Category: domain.AnomalyMissingDeposit,
			Severity: severity,
			Month:    months[lastSeen+1].Month,
			Rationale: fmt.Sprintf(
				"income source %q deposited in %d months but stopped after %s",
				merchant, len(seen), months[lastSeen].Month,
			),
		})
	}
	return findings
}

func detectOverdraftBreaks(months []domain.MonthlySummary) []domain.AnomalyFinding {
	findings := []domain.AnomalyFinding{}
	cleanStreak := 0
	for _, m := range months {
		if !m.HadOverdraft {
			cleanStreak++
			continue
		}
		if cleanStreak >= overdraftCleanStreak {
			findings = append(findings, domain.AnomalyFinding{
				Category: domain.AnomalyOverdraft,
				Severity: domain.SeverityHigh,
				Month:    m.Month,
				Rationale: fmt.Sprintf(
					"balance went negative (%s) after %d months in the clear",
					m.EndBalance.StringFixed(2), cleanStreak,
				),
			})
		}
		cleanStreak = 0
	}
	return findings
}
