package api

import (
	"time"

	"finhealth/internal"

	"github.com/gin-gonic/gin"
)

type anomaliesRequest struct {
	Transactions []transactionInput `json:"transactions"`
}

type anomalyFindingResponse struct {
	Category      string  `json:"category"`
	Severity      string  `json:"severity"`
	Month         string  `json:"month,omitempty"`
	TransactionID *string `json:"transactionID,omitempty"`
	Rationale     string  `json:"rationale"`
}

type anomaliesResponse struct {
	Findings    []anomalyFindingResponse `json:"findings"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

func (m ApiHandler) anomalies(c *gin.Context) {
	var requestBody anomaliesRequest
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
	report := m.AnomalyDetector.Detect(months, transactions)

	findings := []anomalyFindingResponse{}
	for _, f := range report.Findings {
		var txID *string
		if f.TransactionID != nil {
			s := f.TransactionID.String()
			txID = &s
		}
		findings = append(findings, anomalyFindingResponse{
			Category:      string(f.Category),
			Severity:      string(f.Severity),
			Month:         f.Month,
			TransactionID: txID,
			Rationale:     f.Rationale,
		})
	}

	c.JSON(200, anomaliesResponse{
		Findings:    findings,
		GeneratedAt: report.GeneratedAt,
	})
}
