package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/models"
)

// Memory is an in-memory Store used by tests.
type Memory struct {
	mu           sync.RWMutex
	profiles     map[uuid.UUID]*models.Profile
	projects     []*models.Project
	transactions []*models.CreditTransaction
	jobs         map[uuid.UUID]*models.GenerationJob

	// FailProjectInsert makes the next InsertProject fail, to exercise the
	// debited-but-unrecorded path.
	FailProjectInsert bool
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[uuid.UUID]*models.Profile),
		jobs:     make(map[uuid.UUID]*models.GenerationJob),
	}
}

func (m *Memory) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) InsertProfile(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *Memory) AdjustCredits(ctx context.Context, userID uuid.UUID, newBalance int, tx *models.CreditTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return fmt.Errorf("profile %s: %w", userID, apperrors.ErrNotFound)
	}
	p.Credits = newBalance
	p.UpdatedAt = time.Now()
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now()
	cp := *tx
	m.transactions = append(m.transactions, &cp)
	return nil
}

func (m *Memory) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.CreditTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.CreditTransaction
	for i := len(m.transactions) - 1; i >= 0; i-- {
		if m.transactions[i].UserID == userID {
			out = append(out, *m.transactions[i])
		}
	}
	return out, nil
}

func (m *Memory) InsertProject(ctx context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailProjectInsert {
		return fmt.Errorf("insert project: %w", apperrors.ErrPersistence)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.projects = append(m.projects, &cp)
	return nil
}

func (m *Memory) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Project
	for i := len(m.projects) - 1; i >= 0; i-- {
		if m.projects[i].UserID == userID {
			out = append(out, *m.projects[i])
		}
	}
	return out, nil
}

func (m *Memory) RenameProject(ctx context.Context, id, userID uuid.UUID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id && p.UserID == userID {
			p.Title = title
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
}

func (m *Memory) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.projects {
		if p.ID == id && p.UserID == userID {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
}

func (m *Memory) InsertJob(ctx context.Context, j *models.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	cp := *j
	m.jobs[j.ID] = &cp
	return nil
}

func (m *Memory) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
	}
	j.Status = status
	return nil
}

func (m *Memory) CompleteJob(ctx context.Context, id uuid.UUID, resultURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
	}
	j.Status = models.JobStatusCompleted
	j.ResultURL = sql.NullString{String: resultURL, Valid: true}
	j.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

func (m *Memory) FailJob(ctx context.Context, id uuid.UUID, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
	}
	j.Status = models.JobStatusFailed
	j.ErrorMessage = sql.NullString{String: message, Valid: true}
	j.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

// Job returns a copy of the stored job, for tests.
func (m *Memory) Job(id uuid.UUID) (*models.GenerationJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, false
	}
	cp := *j
	return &cp, true
}
