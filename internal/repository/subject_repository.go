package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// SubjectRepository handles subject row access. Child hydration and
// cascade orchestration live in the service layer.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

const subjectColumns = `id, title, description, is_published, completion_rate, type,
	created_by_id, last_updated_by_id, created_at, updated_at`

func scanSubject(row pgx.Row, s *model.Subject) error {
	return row.Scan(&s.ID, &s.Title, &s.Description, &s.IsPublished, &s.CompletionRate,
		&s.Type, &s.CreatedByID, &s.LastUpdatedByID, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new subject. Audit timestamps are set by the database
// at insert time and scanned back.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (title, description, is_published, type, created_by_id, last_updated_by_id)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING id, completion_rate, created_at, updated_at`,
		s.Title, s.Description, s.IsPublished, s.Type, s.CreatedByID,
	).Scan(&s.ID, &s.CompletionRate, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a bare subject row by its ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s := &model.Subject{}
	err := scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByTitle retrieves a bare subject row by its unique title.
func (r *SubjectRepository) GetByTitle(ctx context.Context, title string) (*model.Subject, error) {
	s := &model.Subject{}
	err := scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE title = $1`, title), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetAll retrieves all subject rows in storage order.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.IsPublished, &s.CompletionRate,
			&s.Type, &s.CreatedByID, &s.LastUpdatedByID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// Update rewrites the mutable subject fields and refreshes updated_at.
func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE subjects
		 SET title = $1, description = $2, is_published = $3, completion_rate = $4,
		     type = $5, last_updated_by_id = $6, updated_at = NOW()
		 WHERE id = $7`,
		s.Title, s.Description, s.IsPublished, s.CompletionRate, s.Type, s.LastUpdatedByID, s.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the subject row itself. Children and assignment records
// must already be gone; the FK constraints cascade as a backstop.
func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
