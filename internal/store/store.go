// Package store defines the persistence interfaces the services depend on.
// The Postgres implementation lives in internal/supabase; Memory backs tests.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ai-studio/backend/internal/models"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	InsertProfile(ctx context.Context, p *models.Profile) error
}

type LedgerStore interface {
	// AdjustCredits persists the new balance on the profile row and appends
	// the audit transaction atomically, filling in the transaction's ID and
	// CreatedAt.
	AdjustCredits(ctx context.Context, userID uuid.UUID, newBalance int, tx *models.CreditTransaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.CreditTransaction, error)
}

type ProjectStore interface {
	InsertProject(ctx context.Context, p *models.Project) error
	// ListProjects returns the user's projects newest-first.
	ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	RenameProject(ctx context.Context, id, userID uuid.UUID, title string) error
	DeleteProject(ctx context.Context, id, userID uuid.UUID) error
}

type JobStore interface {
	InsertJob(ctx context.Context, j *models.GenerationJob) error
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error
	CompleteJob(ctx context.Context, id uuid.UUID, resultURL string) error
	FailJob(ctx context.Context, id uuid.UUID, message string) error
}

type Store interface {
	ProfileStore
	LedgerStore
	ProjectStore
	JobStore
}
