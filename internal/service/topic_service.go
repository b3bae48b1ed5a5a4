package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/hierarchy"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// TopicService handles topic business logic. Topics exist only under an
// existing subject; any mutation invalidates the parent's cached payload.
type TopicService struct {
	topics   TopicStore
	subjects *SubjectService
	log      zerolog.Logger
}

// NewTopicService creates a new TopicService.
func NewTopicService(topics TopicStore, subjects *SubjectService, log zerolog.Logger) *TopicService {
	return &TopicService{
		topics:   topics,
		subjects: subjects,
		log:      log.With().Str("component", "topic_service").Logger(),
	}
}

// Create inserts a topic (and nested steps) under the subject.
func (s *TopicService) Create(ctx context.Context, subjectID int, req *model.CreateTopicRequest) (*model.Topic, error) {
	if _, err := s.subjects.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	t := &model.Topic{
		SubjectID:    subjectID,
		Title:        req.Title,
		SubjectOrder: req.SubjectOrder,
		Steps:        make([]model.Step, 0, len(req.Steps)),
	}
	for _, st := range req.Steps {
		t.Steps = append(t.Steps, model.Step{
			Title:      st.Title,
			Content:    st.Content,
			TopicOrder: st.TopicOrder,
		})
	}

	if err := s.topics.Create(ctx, t); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	s.subjects.invalidateSubject(ctx, subjectID)
	return t, nil
}

// GetByID retrieves a topic with its steps.
func (s *TopicService) GetByID(ctx context.Context, id int) (*model.Topic, error) {
	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetAllBySubjectID retrieves the subject's topics in display order.
func (s *TopicService) GetAllBySubjectID(ctx context.Context, subjectID int) ([]model.Topic, error) {
	topics, err := s.topics.GetAllBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	hierarchy.SortTopics(topics)
	if topics == nil {
		topics = []model.Topic{}
	}
	return topics, nil
}

// Update applies the non-nil fields of req to the topic.
func (s *TopicService) Update(ctx context.Context, id int, req *model.UpdateTopicRequest) (*model.Topic, error) {
	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.SubjectOrder != nil {
		t.SubjectOrder = *req.SubjectOrder
	}

	if err := s.topics.Update(ctx, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	s.subjects.invalidateSubject(ctx, t.SubjectID)
	return t, nil
}

// Delete removes the topic together with its steps.
func (s *TopicService) Delete(ctx context.Context, id int) error {
	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTopicNotFound
		}
		return err
	}

	if err := s.topics.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTopicNotFound
		}
		return err
	}

	s.subjects.invalidateSubject(ctx, t.SubjectID)
	return nil
}
