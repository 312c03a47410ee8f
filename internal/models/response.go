package models

import "time"

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Credits:   u.Credits,
		Plan:      u.Plan,
		CreatedAt: u.CreatedAt,
	}
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int          `json:"expires_in,omitempty"`
}

type ProjectResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	Prompt         string    `json:"prompt"`
	NegativePrompt string    `json:"negative_prompt,omitempty"`
	Model          string    `json:"model,omitempty"`
	Size           string    `json:"size,omitempty"`
	Steps          int64     `json:"steps,omitempty"`
	CFGScale       float64   `json:"cfg_scale,omitempty"`
	Duration       string    `json:"duration,omitempty"`
	Style          string    `json:"style,omitempty"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	FileURL        string    `json:"file_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewProjectResponse(p *Project) ProjectResponse {
	r := ProjectResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Type:         p.Type,
		Prompt:       p.Prompt,
		ThumbnailURL: p.ThumbnailURL,
		FileURL:      p.FileURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.NegativePrompt.Valid {
		r.NegativePrompt = p.NegativePrompt.String
	}
	if p.Model.Valid {
		r.Model = p.Model.String
	}
	if p.Size.Valid {
		r.Size = p.Size.String
	}
	if p.Steps.Valid {
		r.Steps = p.Steps.Int64
	}
	if p.CFGScale.Valid {
		r.CFGScale = p.CFGScale.Float64
	}
	if p.Duration.Valid {
		r.Duration = p.Duration.String
	}
	if p.Style.Valid {
		r.Style = p.Style.String
	}
	return r
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type GenerateResponse struct {
	JobID            string          `json:"job_id"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	URLs             []string        `json:"urls"`
	ThumbnailURL     string          `json:"thumbnail_url"`
	CreditsRemaining int             `json:"credits_remaining"`
	Project          ProjectResponse `json:"project"`
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

type PlanResponse struct {
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Price   float64 `json:"price"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
