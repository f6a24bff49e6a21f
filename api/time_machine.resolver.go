package api

import (
	"finhealth/internal"
	"finhealth/internal/domain"

	"github.com/gin-gonic/gin"
)

type timeMachinePresetResponse struct {
	ID          string                `json:"id"`
	Label       string                `json:"label"`
	Description string                `json:"description"`
	Modifier    scenarioModifierInput `json:"modifier"`
}

func (m ApiHandler) getTimeMachinePresets(c *gin.Context) {
	out := []timeMachinePresetResponse{}
	for _, p := range m.TimeMachineHandler.Presets() {
		out = append(out, timeMachinePresetResponse{
			ID:          p.ID,
			Label:       p.Label,
			Description: p.Description,
			Modifier:    newScenarioModifierInput(p.Modifier),
		})
	}
	c.JSON(200, out)
}

// scenarioModifierInput doubles as the wire shape for preset modifiers,
// so clients can fetch a preset and post it back unchanged. Absent
// fields default to zero/false.
type scenarioModifierInput struct {
	IncomeChangePct         float64 `json:"incomeChangePct"`
	ExtraMonthlySavings     float64 `json:"extraMonthlySavings"`
	ExtraMonthlyDebtPayment float64 `json:"extraMonthlyDebtPayment"`
	MonthlyExpenseDelta     float64 `json:"monthlyExpenseDelta"`
	SubscriptionsCancelled  int     `json:"subscriptionsCancelled"`
	OneTimeExpense          float64 `json:"oneTimeExpense"`
	SwitchToSalaried        bool    `json:"switchToSalaried"`
	LoseIncomeStream        bool    `json:"loseIncomeStream"`
}

func newScenarioModifierInput(m domain.ScenarioModifier) scenarioModifierInput {
	return scenarioModifierInput(m)
}

type timeMachineRequest struct {
	Transactions []transactionInput      `json:"transactions"`
	Modifiers    []scenarioModifierInput `json:"modifiers"`
	PresetIDs    []string                `json:"presetIDs"`
	// HorizonMonths defaults to 12 when omitted.
	HorizonMonths *int `json:"horizonMonths"`
}

type projectedMonthResponse struct {
	Month            string  `json:"month"`
	TotalDeposits    float64 `json:"totalDeposits"`
	TotalSpending    float64 `json:"totalSpending"`
	SavingsTransfers float64 `json:"savingsTransfers"`
	DebtPayments     float64 `json:"debtPayments"`
	EndBalance       float64 `json:"endBalance"`
	HadOverdraft     bool    `json:"hadOverdraft"`
	OverallScore     float64 `json:"overallScore"`
}

type timeMachineResponse struct {
	Trajectory  []projectedMonthResponse `json:"trajectory"`
	FinalScores scoreSetResponse         `json:"finalScores"`
}

func (m ApiHandler) timeMachine(c *gin.Context) {
	var requestBody timeMachineRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	transactions, err := transactionsFromInput(requestBody.Transactions)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	modifiers := make([]domain.ScenarioModifier, 0, len(requestBody.Modifiers)+len(requestBody.PresetIDs))
	for _, mod := range requestBody.Modifiers {
		modifiers = append(modifiers, domain.ScenarioModifier(mod))
	}
	for _, presetID := range requestBody.PresetIDs {
		preset, err := m.TimeMachineHandler.FindPreset(presetID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		modifiers = append(modifiers, preset.Modifier)
	}

	horizon := internal.DefaultHorizonMonths
	if requestBody.HorizonMonths != nil {
		horizon = *requestBody.HorizonMonths
	}

	months := internal.AggregateMonthly(transactions)
	result, err := m.TimeMachineHandler.Simulate(internal.SimulateInput{
		History:       months,
		Transactions:  transactions,
		Modifiers:     modifiers,
		HorizonMonths: horizon,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	trajectory := make([]projectedMonthResponse, 0, len(result.Trajectory))
	for _, p := range result.Trajectory {
		trajectory = append(trajectory, projectedMonthResponse{
			Month:            p.Month,
			TotalDeposits:    p.TotalDeposits.InexactFloat64(),
			TotalSpending:    p.TotalSpending.InexactFloat64(),
			SavingsTransfers: p.SavingsTransfers.InexactFloat64(),
			DebtPayments:     p.DebtPayments.InexactFloat64(),
			EndBalance:       p.EndBalance.InexactFloat64(),
			HadOverdraft:     p.HadOverdraft,
			OverallScore:     p.OverallScore,
		})
	}

	c.JSON(200, timeMachineResponse{
		Trajectory:  trajectory,
		FinalScores: newScoreSetResponse(result.FinalScores),
	})
}
