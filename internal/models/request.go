package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GenerateImageRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Model          string  `json:"model,omitempty" example:"realistic"`
	Size           string  `json:"size,omitempty" example:"1:1"`
	Steps          int     `json:"steps,omitempty" example:"20"`
	CFGScale       float64 `json:"cfg_scale,omitempty" example:"7"`
}

type GenerateVideoRequest struct {
	Prompt   string `json:"prompt"`
	Duration string `json:"duration,omitempty" example:"5s"`
	Style    string `json:"style,omitempty" example:"cinematic"`
}

type RenameProjectRequest struct {
	Title string `json:"title" binding:"required"`
}

type AdjustCreditsRequest struct {
	Amount      int    `json:"amount" binding:"required"`
	Description string `json:"description,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
