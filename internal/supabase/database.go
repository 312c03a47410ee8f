package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/store"
)

// DatabaseClient implements the store interfaces against the Supabase
// Postgres database. Row-level ownership is enforced by scoping every
// mutation to user_id, matching the remote row-level policies.
type DatabaseClient struct {
	db *sql.DB
}

var _ store.Store = (*DatabaseClient)(nil)

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	var fullName, avatarURL sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, avatar_url, credits, plan, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Email, &fullName, &avatarURL, &p.Credits, &p.Plan, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, persistErr("failed to get profile", err)
	}
	p.FullName = fullName.String
	p.AvatarURL = avatarURL.String
	return &p, nil
}

func (d *DatabaseClient) InsertProfile(ctx context.Context, p *models.Profile) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, email, full_name, credits, plan)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, p.ID, p.Email, p.FullName, p.Credits, p.Plan).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return persistErr("failed to insert profile", err)
	}
	return nil
}

// AdjustCredits writes the new balance and the audit transaction in one
// database transaction so the ledger cannot drift from the balance.
func (d *DatabaseClient) AdjustCredits(ctx context.Context, userID uuid.UUID, newBalance int, tx *models.CreditTransaction) error {
	dbtx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("failed to begin transaction", err)
	}
	defer dbtx.Rollback()

	res, err := dbtx.ExecContext(ctx, `
		UPDATE profiles
		SET credits = $1, updated_at = NOW()
		WHERE id = $2
	`, newBalance, userID)
	if err != nil {
		return persistErr("failed to update balance", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", userID, apperrors.ErrNotFound)
	}

	err = dbtx.QueryRowContext(ctx, `
		INSERT INTO credit_transactions (user_id, amount, type, description, project_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, tx.UserID, tx.Amount, tx.Type, tx.Description, tx.ProjectID).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return persistErr("failed to append transaction", err)
	}

	if err := dbtx.Commit(); err != nil {
		return persistErr("failed to commit adjustment", err)
	}
	return nil
}

func (d *DatabaseClient) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.CreditTransaction, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, amount, type, description, project_id, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, persistErr("failed to list transactions", err)
	}
	defer rows.Close()

	var transactions []models.CreditTransaction
	for rows.Next() {
		var t models.CreditTransaction
		var description sql.NullString
		err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &description, &t.ProjectID, &t.CreatedAt)
		if err != nil {
			return nil, persistErr("failed to scan transaction", err)
		}
		t.Description = description.String
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (d *DatabaseClient) InsertProject(ctx context.Context, p *models.Project) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO projects (user_id, title, type, prompt, negative_prompt, model, size, steps, cfg_scale, duration, style, thumbnail_url, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, is_public, created_at, updated_at
	`, p.UserID, p.Title, p.Type, p.Prompt, p.NegativePrompt, p.Model, p.Size,
		p.Steps, p.CFGScale, p.Duration, p.Style, p.ThumbnailURL, p.FileURL,
	).Scan(&p.ID, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return persistErr("failed to insert project", err)
	}
	return nil
}

func (d *DatabaseClient) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, title, type, prompt, negative_prompt, model, size, steps, cfg_scale, duration, style, thumbnail_url, file_url, is_public, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, persistErr("failed to list projects", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Type, &p.Prompt,
			&p.NegativePrompt, &p.Model, &p.Size, &p.Steps, &p.CFGScale,
			&p.Duration, &p.Style, &p.ThumbnailURL, &p.FileURL,
			&p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, persistErr("failed to scan project", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (d *DatabaseClient) RenameProject(ctx context.Context, id, userID uuid.UUID, title string) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE projects
		SET title = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, title, id, userID)
	if err != nil {
		return persistErr("failed to rename project", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (d *DatabaseClient) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return persistErr("failed to delete project", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (d *DatabaseClient) InsertJob(ctx context.Context, j *models.GenerationJob) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO generation_queue (user_id, type, status, prompt, parameters)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, j.UserID, j.Type, j.Status, j.Prompt, j.Parameters).Scan(&j.ID, &j.CreatedAt)
	if err != nil {
		return persistErr("failed to insert generation job", err)
	}
	return nil
}

func (d *DatabaseClient) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE generation_queue
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return persistErr("failed to update generation job", err)
	}
	return nil
}

func (d *DatabaseClient) CompleteJob(ctx context.Context, id uuid.UUID, resultURL string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE generation_queue
		SET status = 'completed', result_url = $1, completed_at = NOW()
		WHERE id = $2
	`, resultURL, id)
	if err != nil {
		return persistErr("failed to complete generation job", err)
	}
	return nil
}

func (d *DatabaseClient) FailJob(ctx context.Context, id uuid.UUID, message string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE generation_queue
		SET status = 'failed', error_message = $1, completed_at = NOW()
		WHERE id = $2
	`, message, id)
	if err != nil {
		return persistErr("failed to fail generation job", err)
	}
	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func persistErr(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, errors.Join(apperrors.ErrPersistence, err))
}
