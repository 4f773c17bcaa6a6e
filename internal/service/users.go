package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookstore/backend/internal/db"
	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	maxPasswordLength = 100
)

// UserRepository is implemented by the Postgres-backed store in
// internal/db and faked in tests.
type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, page query.Page, filter query.UserFilter) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, user model.User) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	repo UserRepository
	log  *logrus.Logger
}

func NewUserService(repo UserRepository, log *logrus.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := validateNewUser(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		s.log.WithError(err).Error("failed to create user")
		return nil, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		s.log.WithError(err).Error("failed to get user")
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		s.log.WithError(err).Error("failed to get user by username")
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, page query.Page, filter query.UserFilter) ([]model.User, int64, error) {
	users, total, err := s.repo.ListUsers(ctx, page, filter)
	if err != nil {
		s.log.WithError(err).Error("failed to list users")
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		s.log.WithError(err).Error("failed to load user for update")
		return nil, err
	}

	if req.Email != nil {
		if !strings.Contains(*req.Email, "@") {
			return nil, ErrInvalidInput
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		if len(*req.Username) < minUsernameLength || len(*req.Username) > maxUsernameLength {
			return nil, ErrInvalidInput
		}
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength || len(*req.Password) > maxPasswordLength {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.repo.UpdateUser(ctx, *user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		s.log.WithError(err).Error("failed to update user")
		return nil, err
	}

	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		s.log.WithError(err).Error("failed to delete user")
		return err
	}
	return nil
}

func validateNewUser(req model.CreateUserRequest) error {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidInput
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		return ErrInvalidInput
	}
	if !strings.Contains(req.Email, "@") {
		return ErrInvalidInput
	}
	return nil
}
