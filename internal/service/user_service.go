package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles the user collaborator: account records whose ids
// the assignment subsystem references. Credential material never leaves
// this layer except as a bcrypt hash in storage.
type UserService struct {
	users      UserStore
	bcryptCost int
	log        zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, bcryptCost int, log zerolog.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		log:        log.With().Str("component", "user_service").Logger(),
	}
}

// Create inserts a new user with a hashed password and returns the
// public projection.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.PublicUser, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	pub := u.Public()
	return &pub, nil
}

// GetByID retrieves a user's public projection.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// GetAll retrieves the public projection of every user.
func (s *UserService) GetAll(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// Update applies the non-nil fields of req, re-hashing the password if
// one is supplied.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	if err := s.users.Update(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdatePassword(ctx, id, string(hashed)); err != nil {
			return nil, err
		}
	}

	pub := u.Public()
	return &pub, nil
}

// SetEnabled flips the user's enabled flag.
func (s *UserService) SetEnabled(ctx context.Context, id int, enabled bool) error {
	if err := s.users.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete removes a user; their assignment records cascade away.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
