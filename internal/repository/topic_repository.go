package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// TopicRepository handles topic and step data access. A topic owns its
// steps: deleting a topic removes the step rows first.
type TopicRepository struct {
	pool *pgxpool.Pool
}

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(pool *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{pool: pool}
}

// Create inserts a topic and its steps under an existing subject.
func (r *TopicRepository) Create(ctx context.Context, t *model.Topic) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO topics (subject_id, title, subject_order)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		t.SubjectID, t.Title, t.SubjectOrder,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range t.Steps {
		step := &t.Steps[i]
		step.TopicID = t.ID
		if err := r.pool.QueryRow(ctx,
			`INSERT INTO steps (topic_id, title, content, topic_order)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			step.TopicID, step.Title, step.Content, step.TopicOrder,
		).Scan(&step.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a topic with its steps.
func (r *TopicRepository) GetByID(ctx context.Context, id int) (*model.Topic, error) {
	t := &model.Topic{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, title, subject_order, created_at, updated_at
		 FROM topics WHERE id = $1`, id,
	).Scan(&t.ID, &t.SubjectID, &t.Title, &t.SubjectOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	steps, err := r.stepsForTopics(ctx, []int{t.ID})
	if err != nil {
		return nil, err
	}
	t.Steps = steps[t.ID]
	if t.Steps == nil {
		t.Steps = []model.Step{}
	}
	return t, nil
}

// GetAllBySubjectID retrieves every topic under a subject, steps included,
// in insertion order. Display ordering is the caller's concern.
func (r *TopicRepository) GetAllBySubjectID(ctx context.Context, subjectID int) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, title, subject_order, created_at, updated_at
		 FROM topics WHERE subject_id = $1 ORDER BY id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	var ids []int
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Title, &t.SubjectOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Steps = []model.Step{}
		topics = append(topics, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return topics, nil
	}

	steps, err := r.stepsForTopics(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if s, ok := steps[topics[i].ID]; ok {
			topics[i].Steps = s
		}
	}
	return topics, nil
}

// Update modifies a topic's title and order key.
func (r *TopicRepository) Update(ctx context.Context, t *model.Topic) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE topics SET title = $1, subject_order = $2, updated_at = NOW() WHERE id = $3`,
		t.Title, t.SubjectOrder, t.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a topic together with its steps. Steps go first so the
// topic row never outlives an orphaned child.
func (r *TopicRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM steps WHERE topic_id = $1`, id); err != nil {
		return err
	}
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// stepsForTopics loads the steps of the given topics grouped by topic id,
// ordered for display.
func (r *TopicRepository) stepsForTopics(ctx context.Context, topicIDs []int) (map[int][]model.Step, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic_id, title, content, topic_order
		 FROM steps WHERE topic_id = ANY($1) ORDER BY topic_order, id`, topicIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[int][]model.Step)
	for rows.Next() {
		var s model.Step
		if err := rows.Scan(&s.ID, &s.TopicID, &s.Title, &s.Content, &s.TopicOrder); err != nil {
			return nil, err
		}
		grouped[s.TopicID] = append(grouped[s.TopicID], s)
	}
	return grouped, rows.Err()
}
