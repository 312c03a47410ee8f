package generation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/ledger"
	"github.com/ai-studio/backend/internal/metrics"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/store"
)

const maxTitleLen = 50

// Service runs the generation request lifecycle: validate, simulate, debit
// credits, persist the project. Each request is tracked as a
// generation_queue row advancing pending -> processing -> completed/failed.
type Service struct {
	provider Provider
	ledger   *ledger.Ledger
	projects store.ProjectStore
	jobs     store.JobStore
	log      zerolog.Logger
}

func NewService(provider Provider, ledg *ledger.Ledger, projects store.ProjectStore, jobs store.JobStore, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		ledger:   ledg,
		projects: projects,
		jobs:     jobs,
		log:      log,
	}
}

// Outcome is the completed request's result set and the persisted project.
type Outcome struct {
	JobID        uuid.UUID
	URLs         []string
	ThumbnailURL string
	Project      *models.Project
}

// Generate executes one request. Validation runs before the simulated
// generation step, so invalid requests incur no delay and no credit change.
// The debit and the project insert are two separate writes: a persistence
// failure after the debit surfaces as apperrors.ErrDebitedNotRecorded.
func (s *Service) Generate(ctx context.Context, user *models.User, req Request) (*Outcome, error) {
	if s.projects == nil {
		return nil, apperrors.ErrNotConfigured
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperrors.ErrEmptyPrompt
	}
	cost := Cost(req.Type)
	if cost == 0 {
		return nil, fmt.Errorf("unsupported generation type %q", req.Type)
	}
	if user.Credits < cost {
		return nil, apperrors.ErrInsufficientCredits
	}

	job := s.enqueue(ctx, user, req)

	result, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.failJob(ctx, job, err)
		metrics.GenerationsTotal.WithLabelValues(req.Type, "failed").Inc()
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	if _, err := s.ledger.Adjust(ctx, user, -cost, usageDescription(req.Type), uuid.NullUUID{}); err != nil {
		s.failJob(ctx, job, err)
		metrics.GenerationsTotal.WithLabelValues(req.Type, "failed").Inc()
		return nil, err
	}

	project := buildProject(user.ID, req, result)
	if err := s.projects.InsertProject(ctx, project); err != nil {
		// Credits are already gone. Report the mismatch, do not repair it.
		wrapped := fmt.Errorf("%w: %v", apperrors.ErrDebitedNotRecorded, err)
		s.failJob(ctx, job, wrapped)
		metrics.GenerationsTotal.WithLabelValues(req.Type, "failed").Inc()
		s.log.Error().Err(err).Str("user_id", user.ID.String()).
			Msg("project insert failed after credit debit")
		return nil, wrapped
	}

	s.completeJob(ctx, job, result.URLs[0])
	metrics.GenerationsTotal.WithLabelValues(req.Type, "completed").Inc()

	outcome := &Outcome{
		URLs:         result.URLs,
		ThumbnailURL: result.ThumbnailURL,
		Project:      project,
	}
	if job != nil {
		outcome.JobID = job.ID
	}
	return outcome, nil
}

// enqueue records the request in generation_queue. Job tracking is
// best-effort: a failed insert does not block the request.
func (s *Service) enqueue(ctx context.Context, user *models.User, req Request) *models.GenerationJob {
	if s.jobs == nil {
		return nil
	}
	params, _ := json.Marshal(map[string]interface{}{
		"negative_prompt": req.NegativePrompt,
		"model":           req.Model,
		"size":            req.Size,
		"steps":           req.Steps,
		"cfg_scale":       req.CFGScale,
		"duration":        req.Duration,
		"style":           req.Style,
	})
	job := &models.GenerationJob{
		UserID:     user.ID,
		Type:       req.Type,
		Status:     models.JobStatusPending,
		Prompt:     req.Prompt,
		Parameters: params,
	}
	if err := s.jobs.InsertJob(ctx, job); err != nil {
		s.log.Warn().Err(err).Msg("failed to record generation job")
		return nil
	}
	if err := s.jobs.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing); err != nil {
		s.log.Warn().Err(err).Msg("failed to advance generation job")
	}
	return job
}

func (s *Service) completeJob(ctx context.Context, job *models.GenerationJob, resultURL string) {
	if job == nil {
		return
	}
	if err := s.jobs.CompleteJob(ctx, job.ID, resultURL); err != nil {
		s.log.Warn().Err(err).Msg("failed to complete generation job")
	}
}

func (s *Service) failJob(ctx context.Context, job *models.GenerationJob, cause error) {
	if job == nil {
		return
	}
	if err := s.jobs.FailJob(ctx, job.ID, cause.Error()); err != nil {
		s.log.Warn().Err(err).Msg("failed to mark generation job failed")
	}
}

func buildProject(userID uuid.UUID, req Request, result *Result) *models.Project {
	p := &models.Project{
		UserID:       userID,
		Title:        titleFromPrompt(req.Prompt),
		Type:         req.Type,
		Prompt:       req.Prompt,
		ThumbnailURL: result.ThumbnailURL,
		FileURL:      result.URLs[0],
	}
	if req.NegativePrompt != "" {
		p.NegativePrompt = sql.NullString{String: req.NegativePrompt, Valid: true}
	}
	if req.Model != "" {
		p.Model = sql.NullString{String: req.Model, Valid: true}
	}
	if req.Size != "" {
		p.Size = sql.NullString{String: req.Size, Valid: true}
	}
	if req.Steps != 0 {
		p.Steps = sql.NullInt64{Int64: int64(req.Steps), Valid: true}
	}
	if req.CFGScale != 0 {
		p.CFGScale = sql.NullFloat64{Float64: req.CFGScale, Valid: true}
	}
	if req.Duration != "" {
		p.Duration = sql.NullString{String: req.Duration, Valid: true}
	}
	if req.Style != "" {
		p.Style = sql.NullString{String: req.Style, Valid: true}
	}
	return p
}

func titleFromPrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}
	return string(runes) + "..."
}

func usageDescription(generationType string) string {
	return fmt.Sprintf("Credits used for %s generation", generationType)
}
