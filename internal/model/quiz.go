package model

import (
	"encoding/json"
	"time"
)

// Quiz is an ordered child of a subject holding a set of questions.
type Quiz struct {
	ID           int        `json:"id"`
	SubjectID    int        `json:"subject_id"`
	Title        string     `json:"title"`
	SubjectOrder int        `json:"subject_order"`
	Questions    []Question `json:"questions"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Question belongs to exactly one quiz. Options is stored as-is (jsonb);
// its shape is owned by the quiz authoring frontend.
type Question struct {
	ID        int             `json:"id"`
	QuizID    int             `json:"quiz_id"`
	Prompt    string          `json:"prompt"`
	Options   json.RawMessage `json:"options"`
	QuizOrder int             `json:"quiz_order"`
}

// CreateQuizRequest is the payload for creating a quiz under a subject.
type CreateQuizRequest struct {
	Title        string                  `json:"title" binding:"required,min=2,max=255"`
	SubjectOrder int                     `json:"subject_order" binding:"omitempty,min=0"`
	Questions    []CreateQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// CreateQuestionRequest is a question payload nested inside a quiz create.
type CreateQuestionRequest struct {
	Prompt    string          `json:"prompt" binding:"required,min=1"`
	Options   json.RawMessage `json:"options" binding:"omitempty"`
	QuizOrder int             `json:"quiz_order" binding:"omitempty,min=0"`
}

// UpdateQuizRequest is the payload for updating a quiz.
type UpdateQuizRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=2,max=255"`
	SubjectOrder *int    `json:"subject_order" binding:"omitempty,min=0"`
}
