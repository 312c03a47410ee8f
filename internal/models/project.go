package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	GenerationTypeImage = "image"
	GenerationTypeVideo = "video"
)

// Project is one persisted generation result and its parameters.
type Project struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Title          string
	Type           string
	Prompt         string
	NegativePrompt sql.NullString
	Model          sql.NullString
	Size           sql.NullString
	Steps          sql.NullInt64
	CFGScale       sql.NullFloat64
	Duration       sql.NullString
	Style          sql.NullString
	ThumbnailURL   string
	FileURL        string
	IsPublic       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
