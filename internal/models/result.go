package models

import (
	"strings"
	"time"
)

type SubmitRequest struct {
	JobPost string `json:"job_post" form:"job_post"`
	// UserInput is the field name used by the original HTML form.
	UserInput string `json:"user_input" form:"user_input"`
}

// Text returns whichever input field has non-blank content, preferring job_post.
func (r SubmitRequest) Text() string {
	if strings.TrimSpace(r.JobPost) != "" {
		return r.JobPost
	}
	return r.UserInput
}

type SubmitResponse struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type ProjectResponse struct {
	ID            uint      `json:"id"`
	InputText     string    `json:"input_text"`
	GeneratedText string    `json:"generated_text"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewProjectResponse(a *Artifact) ProjectResponse {
	return ProjectResponse{
		ID:            a.ID,
		InputText:     a.InputText,
		GeneratedText: a.GeneratedText,
		CreatedAt:     a.CreatedAt,
	}
}
