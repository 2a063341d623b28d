package models

import (
	"time"
)

// Artifact is a job post together with the project plan generated for it.
// Rows are written once and never updated. The input length bound is
// enforced by the pipeline, so the column itself is unbounded text.
type Artifact struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	InputText     string    `gorm:"type:text;not null" json:"input_text"`
	GeneratedText string    `gorm:"type:text;not null" json:"generated_text"`
	CreatedAt     time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
}

func (Artifact) TableName() string {
	return "artifacts"
}
