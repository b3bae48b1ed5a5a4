package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/config"
	"github.com/skillbase/skillbase-backend/internal/hierarchy"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// SubjectService owns the subject aggregate: hydration of the child tree,
// display ordering, the cascading delete sequence, and the Redis payload
// cache. Assignment operations live in AssignmentService.
type SubjectService struct {
	subjects    SubjectStore
	topics      TopicStore
	quizzes     QuizStore
	assignments AssignmentStore
	rdb         *redis.Client
	cacheTTL    time.Duration
	log         zerolog.Logger
}

// NewSubjectService creates a new SubjectService. rdb may be nil, in
// which case payload caching is disabled.
func NewSubjectService(
	subjects SubjectStore,
	topics TopicStore,
	quizzes QuizStore,
	assignments AssignmentStore,
	rdb *redis.Client,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjects:    subjects,
		topics:      topics,
		quizzes:     quizzes,
		assignments: assignments,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// Create persists a new subject and returns it with empty child
// collections. A duplicate title maps to ErrTitleTaken.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	sub := &model.Subject{
		Title:           req.Title,
		Description:     req.Description,
		IsPublished:     req.IsPublished,
		Type:            req.Type,
		CreatedByID:     req.CreatedByID,
		LastUpdatedByID: req.CreatedByID,
	}
	if err := s.subjects.Create(ctx, sub); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	sub.Topics = []model.Topic{}
	sub.Quizzes = []model.Quiz{}
	sub.Assignments = []model.AssignmentRecord{}
	return sub, nil
}

// GetByID returns the subject fully hydrated: topics (with steps) and
// quizzes (with questions) in display order, plus assignment records with
// their public user projections. Served from the Redis payload cache when
// possible.
func (s *SubjectService) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	if cached := s.cachedSubject(ctx, id); cached != nil {
		return cached, nil
	}

	sub, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if err := s.hydrate(ctx, sub); err != nil {
		return nil, err
	}
	s.cacheSubject(ctx, sub)
	return sub, nil
}

// GetByTitle returns the bare subject row matching the exact title.
func (s *SubjectService) GetByTitle(ctx context.Context, title string) (*model.Subject, error) {
	sub, err := s.subjects.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return sub, nil
}

// GetAll returns every subject hydrated the same way GetByID hydrates,
// in storage order.
func (s *SubjectService) GetAll(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.subjects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if err := s.hydrate(ctx, &subjects[i]); err != nil {
			return nil, err
		}
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}

// Update applies the non-nil fields of req to the subject, refreshes the
// audit fields, and returns the re-hydrated subject.
func (s *SubjectService) Update(ctx context.Context, id int, req *model.UpdateSubjectRequest) (*model.Subject, error) {
	sub, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		sub.Title = *req.Title
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.IsPublished != nil {
		sub.IsPublished = *req.IsPublished
	}
	if req.CompletionRate != nil {
		sub.CompletionRate = *req.CompletionRate
	}
	if req.Type != nil {
		sub.Type = *req.Type
	}
	if req.LastUpdatedByID != nil {
		sub.LastUpdatedByID = req.LastUpdatedByID
	}

	if err := s.subjects.Update(ctx, sub); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	s.invalidateSubject(ctx, id)
	return s.GetByID(ctx, id)
}

// Delete removes a subject and everything referencing it. Children are
// enumerated and deleted per row (topics before quizzes, each taking its
// own steps/questions with it), then the assignment records, then the
// subject itself. The schema's cascading foreign keys guarantee that the
// final subject delete leaves no orphans even if an earlier step failed
// partway.
func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if _, err := s.subjects.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return err
	}

	topics, err := s.topics.GetAllBySubjectID(ctx, id)
	if err != nil {
		return err
	}
	for _, t := range topics {
		if err := s.topics.Delete(ctx, t.ID); err != nil {
			return err
		}
	}

	quizzes, err := s.quizzes.GetAllBySubjectID(ctx, id)
	if err != nil {
		return err
	}
	for _, q := range quizzes {
		if err := s.quizzes.Delete(ctx, q.ID); err != nil {
			return err
		}
	}

	if err := s.assignments.DeleteBySubject(ctx, id); err != nil {
		return err
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return err
	}

	s.invalidateSubject(ctx, id)
	s.log.Info().Int("subject_id", id).
		Int("topics", len(topics)).
		Int("quizzes", len(quizzes)).
		Msg("subject deleted with children")
	return nil
}

// hydrate attaches the ordered child tree and assignment records to sub.
func (s *SubjectService) hydrate(ctx context.Context, sub *model.Subject) error {
	topics, err := s.topics.GetAllBySubjectID(ctx, sub.ID)
	if err != nil {
		return err
	}
	hierarchy.SortTopics(topics)
	if topics == nil {
		topics = []model.Topic{}
	}
	sub.Topics = topics

	quizzes, err := s.quizzes.GetAllBySubjectID(ctx, sub.ID)
	if err != nil {
		return err
	}
	hierarchy.SortQuizzes(quizzes)
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	sub.Quizzes = quizzes

	records, err := s.assignments.ListBySubject(ctx, sub.ID)
	if err != nil {
		return err
	}
	if records == nil {
		records = []model.AssignmentRecord{}
	}
	sub.Assignments = records
	return nil
}

func (s *SubjectService) cachedSubject(ctx context.Context, id int) *model.Subject {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, config.CacheKey.SubjectPayloadKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Int("subject_id", id).Msg("subject cache read failed")
		}
		return nil
	}
	sub := &model.Subject{}
	if err := json.Unmarshal(data, sub); err != nil {
		s.log.Warn().Err(err).Int("subject_id", id).Msg("subject cache payload corrupt")
		return nil
	}
	return sub
}

func (s *SubjectService) cacheSubject(ctx context.Context, sub *model.Subject) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.SubjectPayloadKey(sub.ID), data, s.cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Int("subject_id", sub.ID).Msg("subject cache write failed")
	}
}

// invalidateSubject drops the cached payload for a subject. Every write
// path that touches the subject or its children must call this.
func (s *SubjectService) invalidateSubject(ctx context.Context, id int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.SubjectPayloadKey(id)).Err(); err != nil {
		s.log.Warn().Err(err).Int("subject_id", id).Msg("subject cache invalidation failed")
	}
}
