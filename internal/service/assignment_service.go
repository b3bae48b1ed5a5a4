package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// AssignmentService tracks which users are assigned to which subjects and
// each pair's completion rate. Every mutation is an upsert or delete on
// the unique (subject, user) pair, so repeating an operation never
// duplicates state.
type AssignmentService struct {
	assignments AssignmentStore
	users       UserStore
	subjects    *SubjectService
	log         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	assignments AssignmentStore,
	users UserStore,
	subjects *SubjectService,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		users:       users,
		subjects:    subjects,
		log:         log.With().Str("component", "assignment_service").Logger(),
	}
}

// Assign upserts the record for (subjectID, userID) with the given
// completion rate. The returned bool reports whether the record was
// created rather than updated. Missing subject or user surfaces as the
// matching not-found error via the foreign keys.
func (s *AssignmentService) Assign(ctx context.Context, subjectID, userID, completionRate int) (*model.AssignmentRecord, bool, error) {
	rec := &model.AssignmentRecord{
		SubjectID:      subjectID,
		UserID:         userID,
		CompletionRate: completionRate,
	}
	created, err := s.assignments.Upsert(ctx, rec)
	if err != nil {
		if isForeignKeyViolation(err) {
			if _, uerr := s.users.GetByID(ctx, userID); errors.Is(uerr, pgx.ErrNoRows) {
				return nil, false, ErrUserNotFound
			}
			return nil, false, ErrSubjectNotFound
		}
		return nil, false, err
	}

	s.subjects.invalidateSubject(ctx, subjectID)

	hydrated, err := s.assignments.Get(ctx, subjectID, userID)
	if err != nil {
		return nil, false, err
	}
	return hydrated, created, nil
}

// Unassign deletes the record for the pair. A pair with no record is a
// no-op, not an error.
func (s *AssignmentService) Unassign(ctx context.Context, subjectID, userID int) error {
	deleted, err := s.assignments.Delete(ctx, subjectID, userID)
	if err != nil {
		return err
	}
	if deleted {
		s.subjects.invalidateSubject(ctx, subjectID)
	}
	return nil
}

// AssignMany assigns each existing user to the subject with completion
// rate 0, strictly in input order. Unknown users are skipped, failures
// are recorded, and neither stops the rest of the list; the outcome slice
// tells the caller exactly what happened to each candidate.
func (s *AssignmentService) AssignMany(ctx context.Context, subjectID int, userIDs []int) ([]model.AssignmentOutcome, error) {
	if _, err := s.subjects.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	outcomes := make([]model.AssignmentOutcome, 0, len(userIDs))
	for _, userID := range userIDs {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				outcomes = append(outcomes, model.AssignmentOutcome{
					UserID: userID,
					Status: model.AssignmentSkipped,
				})
				continue
			}
			outcomes = append(outcomes, model.AssignmentOutcome{
				UserID: userID,
				Status: model.AssignmentFailed,
				Detail: err.Error(),
			})
			continue
		}

		rec := &model.AssignmentRecord{SubjectID: subjectID, UserID: userID, CompletionRate: 0}
		created, err := s.assignments.Upsert(ctx, rec)
		if err != nil {
			outcomes = append(outcomes, model.AssignmentOutcome{
				UserID: userID,
				Status: model.AssignmentFailed,
				Detail: err.Error(),
			})
			continue
		}
		status := model.AssignmentUpdated
		if created {
			status = model.AssignmentAssigned
		}
		outcomes = append(outcomes, model.AssignmentOutcome{UserID: userID, Status: status})
	}

	s.subjects.invalidateSubject(ctx, subjectID)
	return outcomes, nil
}

// UnassignMany removes the records for each listed user, in input order.
// Users without a record are skipped silently.
func (s *AssignmentService) UnassignMany(ctx context.Context, subjectID int, userIDs []int) ([]model.AssignmentOutcome, error) {
	if _, err := s.subjects.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	outcomes := make([]model.AssignmentOutcome, 0, len(userIDs))
	for _, userID := range userIDs {
		deleted, err := s.assignments.Delete(ctx, subjectID, userID)
		switch {
		case err != nil:
			outcomes = append(outcomes, model.AssignmentOutcome{
				UserID: userID,
				Status: model.AssignmentFailed,
				Detail: err.Error(),
			})
		case deleted:
			outcomes = append(outcomes, model.AssignmentOutcome{UserID: userID, Status: model.AssignmentUnassigned})
		default:
			outcomes = append(outcomes, model.AssignmentOutcome{UserID: userID, Status: model.AssignmentSkipped})
		}
	}

	s.subjects.invalidateSubject(ctx, subjectID)
	return outcomes, nil
}

// UpdateCompletionRate upserts the pair's completion rate.
func (s *AssignmentService) UpdateCompletionRate(ctx context.Context, subjectID, userID, rate int) (*model.AssignmentRecord, error) {
	rec, _, err := s.Assign(ctx, subjectID, userID, rate)
	return rec, err
}

// GetBySubjectAndUser returns the pair's record hydrated with the full
// subject tree and the public user projection.
func (s *AssignmentService) GetBySubjectAndUser(ctx context.Context, subjectID, userID int) (*model.AssignmentRecord, error) {
	rec, err := s.assignments.Get(ctx, subjectID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	sub, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	rec.Subject = sub
	return rec, nil
}

// ListUsersForSubject returns the public projection of every user
// assigned to the subject.
func (s *AssignmentService) ListUsersForSubject(ctx context.Context, subjectID int) ([]model.PublicUser, error) {
	if _, err := s.subjects.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	records, err := s.assignments.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	users := make([]model.PublicUser, 0, len(records))
	for _, rec := range records {
		if rec.User != nil {
			users = append(users, *rec.User)
		}
	}
	return users, nil
}

// ListSubjectsForUser returns every subject assigned to the user, each
// hydrated with its own child tree.
func (s *AssignmentService) ListSubjectsForUser(ctx context.Context, userID int) ([]model.Subject, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ids, err := s.assignments.ListSubjectIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	subjects := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		sub, err := s.subjects.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *sub)
	}
	return subjects, nil
}
