package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/hierarchy"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// QuizService handles quiz business logic, mirroring TopicService.
type QuizService struct {
	quizzes  QuizStore
	subjects *SubjectService
	log      zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes QuizStore, subjects *SubjectService, log zerolog.Logger) *QuizService {
	return &QuizService{
		quizzes:  quizzes,
		subjects: subjects,
		log:      log.With().Str("component", "quiz_service").Logger(),
	}
}

// Create inserts a quiz (and nested questions) under the subject.
func (s *QuizService) Create(ctx context.Context, subjectID int, req *model.CreateQuizRequest) (*model.Quiz, error) {
	if _, err := s.subjects.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	q := &model.Quiz{
		SubjectID:    subjectID,
		Title:        req.Title,
		SubjectOrder: req.SubjectOrder,
		Questions:    make([]model.Question, 0, len(req.Questions)),
	}
	for _, qu := range req.Questions {
		q.Questions = append(q.Questions, model.Question{
			Prompt:    qu.Prompt,
			Options:   qu.Options,
			QuizOrder: qu.QuizOrder,
		})
	}

	if err := s.quizzes.Create(ctx, q); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	s.subjects.invalidateSubject(ctx, subjectID)
	return q, nil
}

// GetByID retrieves a quiz with its questions.
func (s *QuizService) GetByID(ctx context.Context, id int) (*model.Quiz, error) {
	q, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return q, nil
}

// GetAllBySubjectID retrieves the subject's quizzes in display order.
func (s *QuizService) GetAllBySubjectID(ctx context.Context, subjectID int) ([]model.Quiz, error) {
	quizzes, err := s.quizzes.GetAllBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	hierarchy.SortQuizzes(quizzes)
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, nil
}

// Update applies the non-nil fields of req to the quiz.
func (s *QuizService) Update(ctx context.Context, id int, req *model.UpdateQuizRequest) (*model.Quiz, error) {
	q, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.SubjectOrder != nil {
		q.SubjectOrder = *req.SubjectOrder
	}

	if err := s.quizzes.Update(ctx, q); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	s.subjects.invalidateSubject(ctx, q.SubjectID)
	return q, nil
}

// Delete removes the quiz together with its questions.
func (s *QuizService) Delete(ctx context.Context, id int) error {
	q, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuizNotFound
		}
		return err
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuizNotFound
		}
		return err
	}

	s.subjects.invalidateSubject(ctx, q.SubjectID)
	return nil
}
