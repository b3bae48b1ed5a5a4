package model

import "time"

// AssignmentRecord is the join entity between a subject and a user.
// At most one record exists per (SubjectID, UserID) pair; assignment is
// always an upsert, never a duplicate insert.
type AssignmentRecord struct {
	SubjectID      int         `json:"subject_id"`
	UserID         int         `json:"user_id"`
	CompletionRate int         `json:"completion_rate"`
	AssignedAt     time.Time   `json:"assigned_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	User           *PublicUser `json:"user,omitempty"`
	Subject        *Subject    `json:"subject,omitempty"`
}

// AssignmentStatus tags the per-user result of a bulk assign/unassign.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentUpdated    AssignmentStatus = "updated"
	AssignmentUnassigned AssignmentStatus = "unassigned"
	AssignmentSkipped    AssignmentStatus = "skipped_not_found"
	AssignmentFailed     AssignmentStatus = "failed"
)

// AssignmentOutcome reports what happened to one user during a bulk
// operation, so callers can observe partial success explicitly.
type AssignmentOutcome struct {
	UserID int              `json:"user_id"`
	Status AssignmentStatus `json:"status"`
	Detail string           `json:"detail,omitempty"`
}

// AssignUsersRequest is the payload for bulk assign/unassign.
type AssignUsersRequest struct {
	UserIDs []int `json:"user_ids" binding:"required,min=1,dive,min=1"`
}

// UpdateCompletionRateRequest is the payload for setting a pair's rate.
type UpdateCompletionRateRequest struct {
	CompletionRate int `json:"completion_rate" binding:"min=0,max=100"`
}
