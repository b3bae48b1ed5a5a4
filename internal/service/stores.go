package service

import (
	"context"

	"github.com/skillbase/skillbase-backend/internal/model"
)

// Store interfaces are declared on the consumer side so the business
// layer can be exercised against in-memory fakes. The pgx repositories
// in internal/repository satisfy them.

// SubjectStore is the storage contract for subject rows.
type SubjectStore interface {
	Create(ctx context.Context, s *model.Subject) error
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	GetByTitle(ctx context.Context, title string) (*model.Subject, error)
	GetAll(ctx context.Context) ([]model.Subject, error)
	Update(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, id int) error
}

// TopicStore is the storage contract for topics and their steps.
// Delete must remove the topic's steps before the topic row.
type TopicStore interface {
	Create(ctx context.Context, t *model.Topic) error
	GetByID(ctx context.Context, id int) (*model.Topic, error)
	GetAllBySubjectID(ctx context.Context, subjectID int) ([]model.Topic, error)
	Update(ctx context.Context, t *model.Topic) error
	Delete(ctx context.Context, id int) error
}

// QuizStore is the storage contract for quizzes and their questions.
// Delete must remove the quiz's questions before the quiz row.
type QuizStore interface {
	Create(ctx context.Context, q *model.Quiz) error
	GetByID(ctx context.Context, id int) (*model.Quiz, error)
	GetAllBySubjectID(ctx context.Context, subjectID int) ([]model.Quiz, error)
	Update(ctx context.Context, q *model.Quiz) error
	Delete(ctx context.Context, id int) error
}

// AssignmentStore is the storage contract for the subject↔user join table.
type AssignmentStore interface {
	Upsert(ctx context.Context, rec *model.AssignmentRecord) (created bool, err error)
	Get(ctx context.Context, subjectID, userID int) (*model.AssignmentRecord, error)
	Delete(ctx context.Context, subjectID, userID int) (deleted bool, err error)
	DeleteBySubject(ctx context.Context, subjectID int) error
	ListBySubject(ctx context.Context, subjectID int) ([]model.AssignmentRecord, error)
	ListSubjectIDsByUser(ctx context.Context, userID int) ([]int, error)
}

// UserStore is the storage contract for the user collaborator.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id int, hash string) error
	SetEnabled(ctx context.Context, id int, enabled bool) error
	Delete(ctx context.Context, id int) error
}

// CustomerStore is the storage contract for storefront customers.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	GetAll(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int) error
}

// ProductStore is the storage contract for storefront products.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int) error
}
