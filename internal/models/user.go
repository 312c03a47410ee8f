package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Profile mirrors a row of the profiles table, the durable account record
// keyed by the auth identity id.
type Profile struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	AvatarURL string
	Credits   int
	Plan      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is the in-memory projection of a profile held for a signed-in
// session. Credits on it mirror the persisted balance.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Credits   int
	Plan      string
	CreatedAt time.Time
}

// UserFromProfile derives the session projection. A profile without a full
// name falls back to the local part of the email address.
func UserFromProfile(p *Profile) *User {
	name := p.FullName
	if name == "" {
		name = p.Email
		if at := strings.Index(p.Email, "@"); at > 0 {
			name = p.Email[:at]
		}
	}
	return &User{
		ID:        p.ID,
		Email:     p.Email,
		Name:      name,
		Credits:   p.Credits,
		Plan:      p.Plan,
		CreatedAt: p.CreatedAt,
	}
}
