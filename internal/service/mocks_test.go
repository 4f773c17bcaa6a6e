package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type mockUserRepository struct {
	createFunc        func(ctx context.Context, user model.User) (*model.User, error)
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	listFunc          func(ctx context.Context, page query.Page, filter query.UserFilter) ([]model.User, int64, error)
	updateFunc        func(ctx context.Context, user model.User) (*model.User, error)
	deleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) ListUsers(ctx context.Context, page query.Page, filter query.UserFilter) ([]model.User, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, page, filter)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user model.User) (*model.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockBookRepository struct {
	createFunc  func(ctx context.Context, book model.Book) (*model.Book, error)
	getByIDFunc func(ctx context.Context, id primitive.ObjectID) (*model.Book, error)
	listFunc    func(ctx context.Context, page query.Page, filter query.BookFilter) ([]model.Book, int64, error)
	updateFunc  func(ctx context.Context, id primitive.ObjectID, set bson.D) (*model.Book, error)
	deleteFunc  func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockBookRepository) CreateBook(ctx context.Context, book model.Book) (*model.Book, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, book)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookRepository) GetBookByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookRepository) ListBooks(ctx context.Context, page query.Page, filter query.BookFilter) ([]model.Book, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, page, filter)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockBookRepository) UpdateBook(ctx context.Context, id primitive.ObjectID, set bson.D) (*model.Book, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, set)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookRepository) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}
