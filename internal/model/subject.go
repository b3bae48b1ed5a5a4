package model

import "time"

// Subject is a top-level learning unit composed of ordered topics and
// quizzes. A hydrated subject carries its full child tree plus the
// assignment records linking it to users.
type Subject struct {
	ID              int                `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	IsPublished     bool               `json:"is_published"`
	CompletionRate  int                `json:"completion_rate"`
	Type            string             `json:"type"`
	CreatedByID     *int               `json:"created_by_id,omitempty"`
	LastUpdatedByID *int               `json:"last_updated_by_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Topics          []Topic            `json:"topics"`
	Quizzes         []Quiz             `json:"quizzes"`
	Assignments     []AssignmentRecord `json:"assignments"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	IsPublished bool   `json:"is_published"`
	Type        string `json:"type" binding:"omitempty,max=50"`
	CreatedByID *int   `json:"created_by_id" binding:"omitempty"`
}

// UpdateSubjectRequest is the payload for partially updating a subject.
// Nil fields are left untouched.
type UpdateSubjectRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=2,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	IsPublished     *bool   `json:"is_published" binding:"omitempty"`
	CompletionRate  *int    `json:"completion_rate" binding:"omitempty,min=0,max=100"`
	Type            *string `json:"type" binding:"omitempty,max=50"`
	LastUpdatedByID *int    `json:"last_updated_by_id" binding:"omitempty"`
}
