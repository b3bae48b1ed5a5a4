package model

import "time"

// Topic is an ordered child of a subject. SubjectOrder is an advisory
// display key within the parent subject; it is not required to be unique
// or gap-free.
type Topic struct {
	ID           int       `json:"id"`
	SubjectID    int       `json:"subject_id"`
	Title        string    `json:"title"`
	SubjectOrder int       `json:"subject_order"`
	Steps        []Step    `json:"steps"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Step is a single unit of content inside a topic.
type Step struct {
	ID         int    `json:"id"`
	TopicID    int    `json:"topic_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	TopicOrder int    `json:"topic_order"`
}

// CreateTopicRequest is the payload for creating a topic under a subject.
type CreateTopicRequest struct {
	Title        string              `json:"title" binding:"required,min=2,max=255"`
	SubjectOrder int                 `json:"subject_order" binding:"omitempty,min=0"`
	Steps        []CreateStepRequest `json:"steps" binding:"omitempty,dive"`
}

// CreateStepRequest is a step payload nested inside a topic create.
type CreateStepRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Content    string `json:"content" binding:"omitempty"`
	TopicOrder int    `json:"topic_order" binding:"omitempty,min=0"`
}

// UpdateTopicRequest is the payload for updating a topic.
type UpdateTopicRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=2,max=255"`
	SubjectOrder *int    `json:"subject_order" binding:"omitempty,min=0"`
}
