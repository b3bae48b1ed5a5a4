package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// In-memory stores backing the service tests. Each mimics the pgx
// repositories' contract: pgx.ErrNoRows for absent rows and PgError
// SQLSTATE codes for constraint violations.

type fakeSubjectStore struct {
	nextID   int
	subjects map[int]*model.Subject
	order    []int
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: map[int]*model.Subject{}}
}

func (f *fakeSubjectStore) Create(_ context.Context, s *model.Subject) error {
	for _, existing := range f.subjects {
		if existing.Title == s.Title {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.subjects[s.ID] = &cp
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int) (*model.Subject, error) {
	s, ok := f.subjects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubjectStore) GetByTitle(_ context.Context, title string) (*model.Subject, error) {
	for _, s := range f.subjects {
		if s.Title == title {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSubjectStore) GetAll(_ context.Context) ([]model.Subject, error) {
	out := make([]model.Subject, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.subjects[id])
	}
	return out, nil
}

func (f *fakeSubjectStore) Update(_ context.Context, s *model.Subject) error {
	if _, ok := f.subjects[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range f.subjects {
		if id != s.ID && existing.Title == s.Title {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	s.UpdatedAt = time.Now()
	cp := *s
	f.subjects[s.ID] = &cp
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int) error {
	if _, ok := f.subjects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.subjects, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeTopicStore struct {
	nextID int
	topics map[int]*model.Topic
	order  []int
}

func newFakeTopicStore() *fakeTopicStore {
	return &fakeTopicStore{topics: map[int]*model.Topic{}}
}

func (f *fakeTopicStore) Create(_ context.Context, t *model.Topic) error {
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	for i := range t.Steps {
		t.Steps[i].ID = t.ID*100 + i + 1
		t.Steps[i].TopicID = t.ID
	}
	cp := *t
	cp.Steps = append([]model.Step(nil), t.Steps...)
	f.topics[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTopicStore) GetByID(_ context.Context, id int) (*model.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	cp.Steps = append([]model.Step(nil), t.Steps...)
	return &cp, nil
}

// GetAllBySubjectID returns topics in insertion order, like the pgx
// repository's ORDER BY id. Display ordering is the caller's concern.
func (f *fakeTopicStore) GetAllBySubjectID(_ context.Context, subjectID int) ([]model.Topic, error) {
	var out []model.Topic
	for _, id := range f.order {
		t := f.topics[id]
		if t.SubjectID != subjectID {
			continue
		}
		cp := *t
		cp.Steps = append([]model.Step(nil), t.Steps...)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeTopicStore) Update(_ context.Context, t *model.Topic) error {
	if _, ok := f.topics[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	t.UpdatedAt = time.Now()
	cp := *t
	cp.Steps = append([]model.Step(nil), t.Steps...)
	f.topics[t.ID] = &cp
	return nil
}

func (f *fakeTopicStore) Delete(_ context.Context, id int) error {
	if _, ok := f.topics[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.topics, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeQuizStore struct {
	nextID  int
	quizzes map[int]*model.Quiz
	order   []int
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: map[int]*model.Quiz{}}
}

func (f *fakeQuizStore) Create(_ context.Context, q *model.Quiz) error {
	f.nextID++
	q.ID = f.nextID
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	for i := range q.Questions {
		q.Questions[i].ID = q.ID*100 + i + 1
		q.Questions[i].QuizID = q.ID
	}
	cp := *q
	cp.Questions = append([]model.Question(nil), q.Questions...)
	f.quizzes[q.ID] = &cp
	f.order = append(f.order, q.ID)
	return nil
}

func (f *fakeQuizStore) GetByID(_ context.Context, id int) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	cp.Questions = append([]model.Question(nil), q.Questions...)
	return &cp, nil
}

func (f *fakeQuizStore) GetAllBySubjectID(_ context.Context, subjectID int) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, id := range f.order {
		q := f.quizzes[id]
		if q.SubjectID != subjectID {
			continue
		}
		cp := *q
		cp.Questions = append([]model.Question(nil), q.Questions...)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeQuizStore) Update(_ context.Context, q *model.Quiz) error {
	if _, ok := f.quizzes[q.ID]; !ok {
		return pgx.ErrNoRows
	}
	q.UpdatedAt = time.Now()
	cp := *q
	cp.Questions = append([]model.Question(nil), q.Questions...)
	f.quizzes[q.ID] = &cp
	return nil
}

func (f *fakeQuizStore) Delete(_ context.Context, id int) error {
	if _, ok := f.quizzes[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.quizzes, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUserStore struct {
	nextID int
	users  map[int]*model.User
	order  []int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.IsEnabled = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	f.order = append(f.order, u.ID)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.users[id])
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range f.users {
		if id != u.ID && existing.Email == u.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id int, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserStore) SetEnabled(_ context.Context, id int, enabled bool) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.IsEnabled = enabled
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeAssignmentStore keeps records in insertion order, matching the
// repository's assigned_at ordering. When wired to the user and subject
// fakes it enforces the join table's foreign keys and hydrates the
// public user projection on reads, like the repository's join does.
type fakeAssignmentStore struct {
	records  []*model.AssignmentRecord
	users    *fakeUserStore
	subjects *fakeSubjectStore
}

func (f *fakeAssignmentStore) Upsert(_ context.Context, rec *model.AssignmentRecord) (bool, error) {
	if f.subjects != nil {
		if _, ok := f.subjects.subjects[rec.SubjectID]; !ok {
			return false, &pgconn.PgError{Code: "23503"}
		}
	}
	if f.users != nil {
		if _, ok := f.users.users[rec.UserID]; !ok {
			return false, &pgconn.PgError{Code: "23503"}
		}
	}
	for _, r := range f.records {
		if r.SubjectID == rec.SubjectID && r.UserID == rec.UserID {
			r.CompletionRate = rec.CompletionRate
			r.UpdatedAt = time.Now()
			return false, nil
		}
	}
	cp := *rec
	cp.AssignedAt = time.Now()
	cp.UpdatedAt = cp.AssignedAt
	f.records = append(f.records, &cp)
	return true, nil
}

func (f *fakeAssignmentStore) hydrated(r *model.AssignmentRecord) *model.AssignmentRecord {
	cp := *r
	if f.users != nil {
		if u, ok := f.users.users[r.UserID]; ok {
			pub := u.Public()
			cp.User = &pub
		}
	}
	return &cp
}

func (f *fakeAssignmentStore) Get(_ context.Context, subjectID, userID int) (*model.AssignmentRecord, error) {
	for _, r := range f.records {
		if r.SubjectID == subjectID && r.UserID == userID {
			return f.hydrated(r), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAssignmentStore) Delete(_ context.Context, subjectID, userID int) (bool, error) {
	for i, r := range f.records {
		if r.SubjectID == subjectID && r.UserID == userID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignmentStore) DeleteBySubject(_ context.Context, subjectID int) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.SubjectID != subjectID {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeAssignmentStore) ListBySubject(_ context.Context, subjectID int) ([]model.AssignmentRecord, error) {
	var out []model.AssignmentRecord
	for _, r := range f.records {
		if r.SubjectID == subjectID {
			out = append(out, *f.hydrated(r))
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) ListSubjectIDsByUser(_ context.Context, userID int) ([]int, error) {
	var out []int
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r.SubjectID)
		}
	}
	return out, nil
}

// catalogFixture wires the full service graph over the in-memory stores.
type catalogFixture struct {
	subjects    *fakeSubjectStore
	topics      *fakeTopicStore
	quizzes     *fakeQuizStore
	assignments *fakeAssignmentStore
	users       *fakeUserStore

	subjectService    *SubjectService
	topicService      *TopicService
	quizService       *QuizService
	assignmentService *AssignmentService
	userService       *UserService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		subjects: newFakeSubjectStore(),
		topics:   newFakeTopicStore(),
		quizzes:  newFakeQuizStore(),
		users:    newFakeUserStore(),
	}
	f.assignments = &fakeAssignmentStore{users: f.users, subjects: f.subjects}

	log := zerolog.Nop()
	f.subjectService = NewSubjectService(f.subjects, f.topics, f.quizzes, f.assignments, nil, 0, log)
	f.topicService = NewTopicService(f.topics, f.subjectService, log)
	f.quizService = NewQuizService(f.quizzes, f.subjectService, log)
	f.assignmentService = NewAssignmentService(f.assignments, f.users, f.subjectService, log)
	f.userService = NewUserService(f.users, 4, log)
	return f
}

func (f *catalogFixture) seedSubject(t *testing.T, title string) *model.Subject {
	t.Helper()
	sub, err := f.subjectService.Create(context.Background(), &model.CreateSubjectRequest{Title: title})
	if err != nil {
		t.Fatalf("seed subject %q: %v", title, err)
	}
	return sub
}

func (f *catalogFixture) seedUser(t *testing.T, name, email string) *model.PublicUser {
	t.Helper()
	u, err := f.userService.Create(context.Background(), &model.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     "learner",
	})
	if err != nil {
		t.Fatalf("seed user %q: %v", email, err)
	}
	return u
}
