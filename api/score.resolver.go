package api

import (
	"finhealth/internal"

	"github.com/gin-gonic/gin"
)

type scoreRequest struct {
	Transactions []transactionInput `json:"transactions"`
}

type scoreResponse struct {
	Scores           scoreSetResponse         `json:"scores"`
	MonthlySummaries []monthlySummaryResponse `json:"monthlySummaries"`
}

func (m ApiHandler) score(c *gin.Context) {
	var requestBody scoreRequest
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
	scores := m.ScoreService.Calculate(months)

	c.JSON(200, scoreResponse{
		Scores:           newScoreSetResponse(scores),
		MonthlySummaries: newMonthlySummaryResponses(months),
	})
}
