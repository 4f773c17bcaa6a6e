package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookstore/backend/internal/db"
	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
)

const maxTitleLength = 200

// BookRepository is implemented by the Mongo-backed store in internal/db
// and faked in tests.
type BookRepository interface {
	CreateBook(ctx context.Context, book model.Book) (*model.Book, error)
	GetBookByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error)
	ListBooks(ctx context.Context, page query.Page, filter query.BookFilter) ([]model.Book, int64, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, set bson.D) (*model.Book, error)
	DeleteBook(ctx context.Context, id primitive.ObjectID) error
}

type BookService struct {
	repo BookRepository
	log  *logrus.Logger
}

func NewBookService(repo BookRepository, log *logrus.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := validateBook(req.Title, req.Price); err != nil {
		return nil, err
	}

	book := model.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
	}
	if req.Price != nil {
		book.Price = *req.Price
	}

	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		s.log.WithError(err).Error("failed to create book")
		return nil, err
	}
	return created, nil
}

func (s *BookService) Get(ctx context.Context, idHex string) (*model.Book, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrNotFound
	}

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.log.WithError(err).Error("failed to get book")
		return nil, err
	}
	return book, nil
}

func (s *BookService) List(ctx context.Context, page query.Page, filter query.BookFilter) ([]model.Book, int64, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, 0, ErrInvalidInput
	}

	books, total, err := s.repo.ListBooks(ctx, page, filter)
	if err != nil {
		s.log.WithError(err).Error("failed to list books")
		return nil, 0, err
	}
	return books, total, nil
}

func (s *BookService) Update(ctx context.Context, idHex string, req model.UpdateBookRequest) (*model.Book, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.D{}
	if req.Title != nil {
		if err := validateBook(*req.Title, nil); err != nil {
			return nil, err
		}
		set = append(set, bson.E{Key: "title", Value: *req.Title})
	}
	if req.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *req.Author})
	}
	if req.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *req.Description})
	}
	if req.ISBN != nil {
		set = append(set, bson.E{Key: "isbn", Value: *req.ISBN})
	}
	if req.PublishedYear != nil {
		set = append(set, bson.E{Key: "published_year", Value: *req.PublishedYear})
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidInput
		}
		set = append(set, bson.E{Key: "price", Value: *req.Price})
	}
	set = append(set, bson.E{Key: "updated_at", Value: time.Now().UTC()})

	book, err := s.repo.UpdateBook(ctx, id, set)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.log.WithError(err).Error("failed to update book")
		return nil, err
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteBook(ctx, id); err != nil {
		if db.IsNoDocuments(err) {
			return ErrNotFound
		}
		s.log.WithError(err).Error("failed to delete book")
		return err
	}
	return nil
}

func validateBook(title string, price *float64) error {
	if title == "" || len(title) > maxTitleLength {
		return ErrInvalidInput
	}
	if price != nil && *price < 0 {
		return ErrInvalidInput
	}
	return nil
}
