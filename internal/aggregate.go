package internal

import (
	"sort"
	"strings"

	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
)

// payrollIndicators are matched against lower-cased income merchant names
// to detect salaried income.
var payrollIndicators = []string{
	"payroll",
	"direct deposit",
	"direct dep",
	"salary",
	"paycheck",
}

type monthAccumulator struct {
	deposits      decimal.Decimal
	spending      decimal.Decimal
	essential     decimal.Decimal
	discretionary decimal.Decimal
	debtPayments  decimal.Decimal
	savings       decimal.Decimal
	incomeSources map[string]struct{}
	subscriptions map[string]struct{}
	hasPayroll    bool
}

func newMonthAccumulator() *monthAccumulator {
	return &monthAccumulator{
		incomeSources: map[string]struct{}{},
		subscriptions: map[string]struct{}{},
	}
}

// AggregateMonthly converts a flat transaction list into one summary per
// calendar month present in the input, sorted ascending by month key, with
// the running balance carried across months from an implicit zero start.
// Months with no transactions never appear; an empty input yields an empty
// result, not an error. This is the one aggregation call site every
// analytics consumer shares - scoring, stress tests, time machine and
// anomaly detection must agree on these numbers exactly.
func AggregateMonthly(transactions []domain.Transaction) []domain.MonthlySummary {
	byMonth := map[string]*monthAccumulator{}
	for _, tx := range transactions {
		key := tx.MonthKey()
		acc, ok := byMonth[key]
		if !ok {
			acc = newMonthAccumulator()
			byMonth[key] = acc
		}

		amount := tx.Amount.Abs()
		if tx.IsIncomeDeposit {
			acc.deposits = acc.deposits.Add(amount)
			merchant := strings.ToLower(strings.TrimSpace(tx.Merchant))
			if merchant != "" {
				acc.incomeSources[merchant] = struct{}{}
			}
			for _, indicator := range payrollIndicators {
				if strings.Contains(merchant, indicator) {
					acc.hasPayroll = true
					break
				}
			}
			continue
		}

		acc.spending = acc.spending.Add(amount)
		switch tx.Category {
		case domain.CategoryDebtPayment:
			acc.debtPayments = acc.debtPayments.Add(amount)
		case domain.CategorySavingsTransfer:
			acc.savings = acc.savings.Add(amount)
		case domain.CategorySubscription:
			merchant := strings.ToLower(strings.TrimSpace(tx.Merchant))
			if merchant != "" {
				acc.subscriptions[merchant] = struct{}{}
			}
		}
		if tx.Category.IsEssential() {
			acc.essential = acc.essential.Add(amount)
		} else {
			acc.discretionary = acc.discretionary.Add(amount)
		}
	}

	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summaries := make([]domain.MonthlySummary, 0, len(keys))
	runningBalance := decimal.Zero
	for _, key := range keys {
		acc := byMonth[key]
		runningBalance = runningBalance.Add(acc.deposits).Sub(acc.spending)
		summaries = append(summaries, domain.MonthlySummary{
			Month:                 key,
			TotalDeposits:         acc.deposits,
			TotalSpending:         acc.spending,
			EssentialSpending:     acc.essential,
			DiscretionarySpending: acc.discretionary,
			DebtPayments:          acc.debtPayments,
			SavingsTransfers:      acc.savings,
			EndBalance:            runningBalance,
			IncomeSourceCount:     len(acc.incomeSources),
			HadOverdraft:          runningBalance.IsNegative(),
			SubscriptionCount:     len(acc.subscriptions),
			HasPayrollDeposit:     acc.hasPayroll,
		})
	}

	return summaries
}

// RebuildBalances recomputes the running balance chain and overdraft flags
// in place from each month's deposits and spending. Used after a scenario
// perturbs the flows, so the perturbed trajectory keeps the same balance
// continuity the aggregator guarantees.
func RebuildBalances(months []domain.MonthlySummary) {
	runningBalance := decimal.Zero
	for i := range months {
		runningBalance = runningBalance.Add(months[i].TotalDeposits).Sub(months[i].TotalSpending)
		months[i].EndBalance = runningBalance
		months[i].HadOverdraft = runningBalance.IsNegative()
	}
}
