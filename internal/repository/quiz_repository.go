package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// QuizRepository handles quiz and question data access. A quiz owns its
// questions: deleting a quiz removes the question rows first.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create inserts a quiz and its questions under an existing subject.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (subject_id, title, subject_order)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		q.SubjectID, q.Title, q.SubjectOrder,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range q.Questions {
		question := &q.Questions[i]
		question.QuizID = q.ID
		if err := r.pool.QueryRow(ctx,
			`INSERT INTO questions (quiz_id, prompt, options, quiz_order)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			question.QuizID, question.Prompt, question.Options, question.QuizOrder,
		).Scan(&question.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a quiz with its questions.
func (r *QuizRepository) GetByID(ctx context.Context, id int) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, title, subject_order, created_at, updated_at
		 FROM quizzes WHERE id = $1`, id,
	).Scan(&q.ID, &q.SubjectID, &q.Title, &q.SubjectOrder, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}

	questions, err := r.questionsForQuizzes(ctx, []int{q.ID})
	if err != nil {
		return nil, err
	}
	q.Questions = questions[q.ID]
	if q.Questions == nil {
		q.Questions = []model.Question{}
	}
	return q, nil
}

// GetAllBySubjectID retrieves every quiz under a subject, questions
// included, in insertion order.
func (r *QuizRepository) GetAllBySubjectID(ctx context.Context, subjectID int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, title, subject_order, created_at, updated_at
		 FROM quizzes WHERE subject_id = $1 ORDER BY id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	var ids []int
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.SubjectID, &q.Title, &q.SubjectOrder, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		q.Questions = []model.Question{}
		quizzes = append(quizzes, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return quizzes, nil
	}

	questions, err := r.questionsForQuizzes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if qs, ok := questions[quizzes[i].ID]; ok {
			quizzes[i].Questions = qs
		}
	}
	return quizzes, nil
}

// Update modifies a quiz's title and order key.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE quizzes SET title = $1, subject_order = $2, updated_at = NOW() WHERE id = $3`,
		q.Title, q.SubjectOrder, q.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a quiz together with its questions, questions first.
func (r *QuizRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, id); err != nil {
		return err
	}
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *QuizRepository) questionsForQuizzes(ctx context.Context, quizIDs []int) (map[int][]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, prompt, options, quiz_order
		 FROM questions WHERE quiz_id = ANY($1) ORDER BY quiz_order, id`, quizIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[int][]model.Question)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Prompt, &q.Options, &q.QuizOrder); err != nil {
			return nil, err
		}
		grouped[q.QuizID] = append(grouped[q.QuizID], q)
	}
	return grouped, rows.Err()
}
