package domain

import (
	"time"

	"github.com/google/uuid"
)

type AnomalyCategory string

const (
	AnomalySpendingSpike        AnomalyCategory = "spending_spike"
	AnomalyNewRecurringMerchant AnomalyCategory = "new_recurring_merchant"
	AnomalyMissingDeposit       AnomalyCategory = "missing_deposit"
	AnomalyOverdraft            AnomalyCategory = "overdraft"
)

type AnomalySeverity string

const (
	SeverityLow    AnomalySeverity = "low"
	SeverityMedium AnomalySeverity = "medium"
	SeverityHigh   AnomalySeverity = "high"
)

// AnomalyFinding references either a month key or a specific transaction,
// so callers can link back to source data.
type AnomalyFinding struct {
	Category      AnomalyCategory
	Severity      AnomalySeverity
	Month         string
	TransactionID *uuid.UUID
	Rationale     string
}

type AnomalyReport struct {
	Findings    []AnomalyFinding
	GeneratedAt time.Time
}
