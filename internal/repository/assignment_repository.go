package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// AssignmentRepository handles the subject↔user join table. The pair
// (subject_id, user_id) is the primary key, so a second assign of the
// same pair can only ever update the existing row.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Upsert creates the assignment record for the pair or updates the
// existing record's completion rate. The returned bool reports whether a
// new row was created (xmax = 0 on a freshly inserted row).
func (r *AssignmentRepository) Upsert(ctx context.Context, rec *model.AssignmentRecord) (bool, error) {
	var created bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subject_assignments (subject_id, user_id, completion_rate)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (subject_id, user_id)
		 DO UPDATE SET completion_rate = EXCLUDED.completion_rate, updated_at = NOW()
		 RETURNING assigned_at, updated_at, (xmax = 0) AS created`,
		rec.SubjectID, rec.UserID, rec.CompletionRate,
	).Scan(&rec.AssignedAt, &rec.UpdatedAt, &created)
	return created, err
}

// Get retrieves the record for a pair, hydrated with the public user
// projection. Returns pgx.ErrNoRows if no record exists.
func (r *AssignmentRepository) Get(ctx context.Context, subjectID, userID int) (*model.AssignmentRecord, error) {
	rec := &model.AssignmentRecord{User: &model.PublicUser{}}
	err := r.pool.QueryRow(ctx,
		`SELECT a.subject_id, a.user_id, a.completion_rate, a.assigned_at, a.updated_at,
		        u.id, u.name, u.email, u.role, u.is_enabled, u.created_at
		 FROM subject_assignments a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.subject_id = $1 AND a.user_id = $2`,
		subjectID, userID,
	).Scan(&rec.SubjectID, &rec.UserID, &rec.CompletionRate, &rec.AssignedAt, &rec.UpdatedAt,
		&rec.User.ID, &rec.User.Name, &rec.User.Email, &rec.User.Role, &rec.User.IsEnabled, &rec.User.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record for a pair. The returned bool reports whether
// a row actually existed; deleting an absent pair is not an error.
func (r *AssignmentRepository) Delete(ctx context.Context, subjectID, userID int) (bool, error) {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM subject_assignments WHERE subject_id = $1 AND user_id = $2`,
		subjectID, userID,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

// DeleteBySubject removes every assignment record referencing a subject.
func (r *AssignmentRepository) DeleteBySubject(ctx context.Context, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM subject_assignments WHERE subject_id = $1`, subjectID)
	return err
}

// ListBySubject retrieves all assignment records for a subject, each
// hydrated with its public user projection.
func (r *AssignmentRepository) ListBySubject(ctx context.Context, subjectID int) ([]model.AssignmentRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.subject_id, a.user_id, a.completion_rate, a.assigned_at, a.updated_at,
		        u.id, u.name, u.email, u.role, u.is_enabled, u.created_at
		 FROM subject_assignments a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.subject_id = $1
		 ORDER BY a.assigned_at, a.user_id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AssignmentRecord
	for rows.Next() {
		rec := model.AssignmentRecord{User: &model.PublicUser{}}
		if err := rows.Scan(&rec.SubjectID, &rec.UserID, &rec.CompletionRate, &rec.AssignedAt, &rec.UpdatedAt,
			&rec.User.ID, &rec.User.Name, &rec.User.Email, &rec.User.Role, &rec.User.IsEnabled, &rec.User.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListSubjectIDsByUser retrieves the ids of every subject assigned to a
// user, oldest assignment first.
func (r *AssignmentRepository) ListSubjectIDsByUser(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_id FROM subject_assignments
		 WHERE user_id = $1 ORDER BY assigned_at, subject_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
