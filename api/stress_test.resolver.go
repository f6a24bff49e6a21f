package api

import (
	"time"

	"finhealth/internal"

	"github.com/gin-gonic/gin"
)

type stressScenarioResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (m ApiHandler) getStressScenarios(c *gin.Context) {
	out := []stressScenarioResponse{}
	for _, s := range m.StressTestHandler.Scenarios() {
		out = append(out, stressScenarioResponse{
			ID:          s.ID,
			Label:       s.Label,
			Description: s.Description,
		})
	}
	c.JSON(200, out)
}

type stressTestRequest struct {
	Transactions []transactionInput `json:"transactions"`
	ScenarioID   string             `json:"scenarioID"`
	Amount       *float64           `json:"amount"`
}

type stressTestResponse struct {
	ScenarioID     string              `json:"scenarioID"`
	BaselineScores scoreSetResponse    `json:"baselineScores"`
	StressedScores scoreSetResponse    `json:"stressedScores"`
	Deltas         scoreDeltasResponse `json:"deltas"`
	Narrative      string              `json:"narrative"`
	GeneratedAt    time.Time           `json:"generatedAt"`
}

func (m ApiHandler) stressTest(c *gin.Context) {
	var requestBody stressTestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	transactions, err := transactionsFromInput(requestBody.Transactions)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	months := internal.AggregateMonthly(transactions)
	baseline := m.ScoreService.Calculate(months)

	result, err := m.StressTestHandler.Run(internal.RunStressTestInput{
		ScenarioID:     requestBody.ScenarioID,
		History:        months,
		BaselineScores: baseline,
		Amount:         requestBody.Amount,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, stressTestResponse{
		ScenarioID:     result.ScenarioID,
		BaselineScores: newScoreSetResponse(result.BaselineScores),
		StressedScores: newScoreSetResponse(result.StressedScores),
		Deltas:         newScoreDeltasResponse(result.Deltas),
		Narrative:      result.Narrative,
		GeneratedAt:    result.GeneratedAt,
	})
}
