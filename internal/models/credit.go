package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TransactionTypePurchase = "purchase"
	TransactionTypeUsage    = "usage"
	TransactionTypeRefund   = "refund"
	TransactionTypeBonus    = "bonus"
)

// CreditTransaction is one append-only entry of the credit ledger.
// Rows are never mutated or deleted.
type CreditTransaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      int
	Type        string
	Description string
	ProjectID   uuid.NullUUID
	CreatedAt   time.Time
}

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// GenerationJob mirrors a row of the generation_queue table. One row is
// written per generation request and advanced through the request lifecycle.
type GenerationJob struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Type         string
	Status       string
	Prompt       string
	Parameters   json.RawMessage
	ResultURL    sql.NullString
	ErrorMessage sql.NullString
	CreatedAt    time.Time
	CompletedAt  sql.NullTime
}
