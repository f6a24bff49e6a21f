package internal

import (
	"strings"
	"time"

	"finhealth/internal/calculator"
	"finhealth/internal/domain"
	"finhealth/internal/util"

	"github.com/shopspring/decimal"
)

const DefaultHorizonMonths = 12

// defaultSubscriptionPrice is used to value cancelled subscriptions when
// the user has no subscription history to estimate from.
var defaultSubscriptionPrice = decimal.NewFromInt(15)

var timeMachinePresets = []domain.TimeMachinePreset{
	{
		ID:          "aggressive_saver",
		Label:       "Aggressive saver",
		Description: "Move an extra $500 into savings every month.",
		Modifier:    domain.ScenarioModifier{ExtraMonthlySavings: 500},
	},
	{
		ID:          "debt_crusher",
		Label:       "Debt crusher",
		Description: "Put an extra $300 toward debt every month.",
		Modifier:    domain.ScenarioModifier{ExtraMonthlyDebtPayment: 300},
	},
	{
		ID:          "trim_subscriptions",
		Label:       "Trim subscriptions",
		Description: "Cancel three recurring subscriptions.",
		Modifier:    domain.ScenarioModifier{SubscriptionsCancelled: 3},
	},
	{
		ID:          "salaried_switch",
		Label:       "Switch to salaried work",
		Description: "Replace variable income with a steady salaried paycheck at your current average.",
		Modifier:    domain.ScenarioModifier{SwitchToSalaried: true},
	},
	{
		ID:          "side_hustle",
		Label:       "Start a side hustle",
		Description: "Grow monthly income by 15%.",
		Modifier:    domain.ScenarioModifier{IncomeChangePct: 15},
	},
}

// TimeMachineHandler projects the monthly history forward under a set of
// user-supplied modifiers. Each projected month starts from the trailing
// averages of the real history, applies the net modifier effect, and
// carries the running balance forward exactly like the aggregator does.
// Caller inputs are never mutated.
type TimeMachineHandler struct {
	ScoreService calculator.ScoreService
}

// Presets returns the catalog of named modifier bundles without
// simulating anything.
func (h TimeMachineHandler) Presets() []domain.TimeMachinePreset {
	out := make([]domain.TimeMachinePreset, len(timeMachinePresets))
	copy(out, timeMachinePresets)
	return out
}

func (h TimeMachineHandler) FindPreset(id string) (*domain.TimeMachinePreset, error) {
	for i := range timeMachinePresets {
		if timeMachinePresets[i].ID == id {
			return &timeMachinePresets[i], nil
		}
	}
	return nil, domain.NotFoundError{Resource: "time machine preset", ID: id}
}

type SimulateInput struct {
	History      []domain.MonthlySummary
	Transactions []domain.Transaction
	Modifiers    []domain.ScenarioModifier
	// HorizonMonths must be >= 1. Callers that want the default should
	// pass DefaultHorizonMonths.
	HorizonMonths int
}

type trailingAverages struct {
	deposits      decimal.Decimal
	essential     decimal.Decimal
	discretionary decimal.Decimal
	debt          decimal.Decimal
	savings       decimal.Decimal
}

func (h TimeMachineHandler) Simulate(in SimulateInput) (*domain.SimulationResult, error) {
	if in.HorizonMonths < 1 {
		return nil, domain.NewValidationError("simulation horizon must be at least 1 month, got %d", in.HorizonMonths)
	}

	net := domain.MergeModifiers(in.Modifiers)
	avg := computeTrailingAverages(in.History)

	lostMonthly := decimal.Zero
	if net.LoseIncomeStream {
		lostMonthly = largestIncomeSourceMonthly(in.Transactions, len(in.History))
	}

	subscriptionSavings := decimal.Zero
	if net.SubscriptionsCancelled > 0 {
		price := averageSubscriptionPrice(in.Transactions)
		subscriptionSavings = price.Mul(decimal.NewFromInt(int64(net.SubscriptionsCancelled)))
	}

	incomeMultiplier := decimal.NewFromFloat(1 + net.IncomeChangePct/100)
	if incomeMultiplier.IsNegative() {
		incomeMultiplier = decimal.Zero
	}
	extraSavings := nonNegative(decimal.NewFromFloat(net.ExtraMonthlySavings))
	extraDebt := nonNegative(decimal.NewFromFloat(net.ExtraMonthlyDebtPayment))
	expenseDelta := decimal.NewFromFloat(net.MonthlyExpenseDelta)
	oneTimeExpense := nonNegative(decimal.NewFromFloat(net.OneTimeExpense))

	// non-debt and non-savings portions of the trailing averages; the
	// modifier deltas attach to the debt/savings components so the
	// essential/discretionary partition stays exact.
	otherEssential := nonNegative(avg.essential.Sub(avg.debt))
	otherDiscretionary := nonNegative(avg.discretionary.Sub(avg.savings))

	startKey, balance, sourceCount, subscriptionCount, hasPayroll := projectionSeed(in.History)
	if net.LoseIncomeStream && sourceCount > 0 {
		sourceCount--
	}
	if net.SwitchToSalaried {
		hasPayroll = true
		if sourceCount == 0 {
			sourceCount = 1
		}
	}
	subscriptionCount -= net.SubscriptionsCancelled
	if subscriptionCount < 0 {
		subscriptionCount = 0
	}

	combined := domain.CopyMonthlySummaries(in.History)
	trajectory := make([]domain.ProjectedMonth, 0, in.HorizonMonths)

	for i := 0; i < in.HorizonMonths; i++ {
		deposits := nonNegative(avg.deposits.Mul(incomeMultiplier).Sub(lostMonthly))
		debt := avg.debt.Add(extraDebt)
		savings := avg.savings.Add(extraSavings)

		discretionaryOther := otherDiscretionary.Add(expenseDelta).Sub(subscriptionSavings)
		if i == 0 {
			discretionaryOther = discretionaryOther.Add(oneTimeExpense)
		}
		discretionaryOther = nonNegative(discretionaryOther)

		essential := otherEssential.Add(debt)
		discretionary := discretionaryOther.Add(savings)
		totalSpending := essential.Add(discretionary)

		balance = balance.Add(deposits).Sub(totalSpending)

		month := domain.MonthlySummary{
			Month:                 util.NextMonthKey(startKey, i+1),
			TotalDeposits:         deposits,
			TotalSpending:         totalSpending,
			EssentialSpending:     essential,
			DiscretionarySpending: discretionary,
			DebtPayments:          debt,
			SavingsTransfers:      savings,
			EndBalance:            balance,
			IncomeSourceCount:     sourceCount,
			HadOverdraft:          balance.IsNegative(),
			SubscriptionCount:     subscriptionCount,
			HasPayrollDeposit:     hasPayroll,
		}
		combined = append(combined, month)

		trajectory = append(trajectory, domain.ProjectedMonth{
			Month:            month.Month,
			TotalDeposits:    month.TotalDeposits,
			TotalSpending:    month.TotalSpending,
			SavingsTransfers: month.SavingsTransfers,
			DebtPayments:     month.DebtPayments,
			EndBalance:       month.EndBalance,
			HadOverdraft:     month.HadOverdraft,
			OverallScore:     h.ScoreService.Calculate(combined).Overall,
		})
	}

	return &domain.SimulationResult{
		Trajectory:  trajectory,
		FinalScores: h.ScoreService.Calculate(combined),
	}, nil
}

// projectionSeed returns the month the projection continues from and the
// state carried into it. An empty history starts from the current
// calendar month with a zero balance.
func projectionSeed(history []domain.MonthlySummary) (startKey string, balance decimal.Decimal, sourceCount, subscriptionCount int, hasPayroll bool) {
	if len(history) == 0 {
		return util.MonthKey(time.Now().UTC()), decimal.Zero, 0, 0, false
	}
	last := history[len(history)-1]
	return last.Month, last.EndBalance, last.IncomeSourceCount, last.SubscriptionCount, last.HasPayrollDeposit
}

func computeTrailingAverages(history []domain.MonthlySummary) trailingAverages {
	avg := trailingAverages{
		deposits:      decimal.Zero,
		essential:     decimal.Zero,
		discretionary: decimal.Zero,
		debt:          decimal.Zero,
		savings:       decimal.Zero,
	}
	if len(history) == 0 {
		return avg
	}
	for _, m := range history {
		avg.deposits = avg.deposits.Add(m.TotalDeposits)
		avg.essential = avg.essential.Add(m.EssentialSpending)
		avg.discretionary = avg.discretionary.Add(m.DiscretionarySpending)
		avg.debt = avg.debt.Add(m.DebtPayments)
		avg.savings = avg.savings.Add(m.SavingsTransfers)
	}
	n := decimal.NewFromInt(int64(len(history)))
	avg.deposits = avg.deposits.Div(n)
	avg.essential = avg.essential.Div(n)
	avg.discretionary = avg.discretionary.Div(n)
	avg.debt = avg.debt.Div(n)
	avg.savings = avg.savings.Div(n)
	return avg
}

// largestIncomeSourceMonthly estimates the monthly contribution of the
// biggest income source across the history window.
func largestIncomeSourceMonthly(transactions []domain.Transaction, historyMonths int) decimal.Decimal {
	if historyMonths == 0 {
		return decimal.Zero
	}
	totals := map[string]decimal.Decimal{}
	for _, tx := range transactions {
		if !tx.IsIncomeDeposit {
			continue
		}
		merchant := strings.ToLower(strings.TrimSpace(tx.Merchant))
		totals[merchant] = totals[merchant].Add(tx.Amount.Abs())
	}
	largest := decimal.Zero
	for _, total := range totals {
		if total.GreaterThan(largest) {
			largest = total
		}
	}
	return largest.Div(decimal.NewFromInt(int64(historyMonths)))
}

func averageSubscriptionPrice(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	count := 0
	for _, tx := range transactions {
		if tx.IsIncomeDeposit || tx.Category != domain.CategorySubscription {
			continue
		}
		total = total.Add(tx.Amount.Abs())
		count++
	}
	if count == 0 {
		return defaultSubscriptionPrice
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
