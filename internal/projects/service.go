// Package projects manages the catalog of persisted generation results.
package projects

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/store"
	"github.com/ai-studio/backend/internal/supabase"
)

type Service struct {
	store store.ProjectStore      // nil when the backend is unconfigured
	media *supabase.StorageClient // optional, best-effort media cleanup
	log   zerolog.Logger
}

func NewService(st store.ProjectStore, media *supabase.StorageClient, log zerolog.Logger) *Service {
	return &Service{store: st, media: media, log: log}
}

// List returns the user's projects newest-first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	if s.store == nil {
		return nil, apperrors.ErrNotConfigured
	}
	return s.store.ListProjects(ctx, userID)
}

func (s *Service) Rename(ctx context.Context, userID, projectID uuid.UUID, title string) error {
	if s.store == nil {
		return apperrors.ErrNotConfigured
	}
	return s.store.RenameProject(ctx, projectID, userID, title)
}

// Delete removes the project row and, best-effort, any stored media under
// the project's storage prefix.
func (s *Service) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if s.store == nil {
		return apperrors.ErrNotConfigured
	}

	if s.media != nil {
		if err := s.media.DeleteProjectFiles(userID, projectID); err != nil {
			s.log.Warn().Err(err).Str("project_id", projectID.String()).
				Msg("failed to delete stored media")
		}
	}

	return s.store.DeleteProject(ctx, projectID, userID)
}

// Filter is a pure predicate over already-loaded projects. "all" (or empty)
// returns the input unchanged; otherwise the subset with a matching type,
// preserving relative order.
func Filter(list []models.Project, generationType string) []models.Project {
	if generationType == "" || generationType == "all" {
		return list
	}
	out := make([]models.Project, 0, len(list))
	for _, p := range list {
		if p.Type == generationType {
			out = append(out, p)
		}
	}
	return out
}
