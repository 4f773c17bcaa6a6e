package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstore/backend/internal/config"
	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
	"github.com/bookstore/backend/internal/service"
)

// fakeUserRepo is an in-memory stand-in for the Postgres store. It keeps
// insertion order so list pagination behaves like the real ordered query.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
	order []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	now := time.Now().UTC()
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	return &user, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListUsers(_ context.Context, page query.Page, filter query.UserFilter) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []model.User{}
	needle := strings.ToLower(filter.Search)
	for _, id := range r.order {
		user, ok := r.users[id]
		if !ok {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(user.Username), needle) &&
			!strings.Contains(strings.ToLower(user.Email), needle) {
			continue
		}
		matched = append(matched, user)
	}
	total := int64(len(matched))
	if page.Skip >= len(matched) {
		return []model.User{}, total, nil
	}
	matched = matched[page.Skip:]
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}
	return matched, total, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return &user, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

// fakeBookRepo mirrors the Mongo store, including conjunctive filter
// semantics, so the HTTP scenarios can run without a real database.
type fakeBookRepo struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]model.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[primitive.ObjectID]model.Book)}
}

func (r *fakeBookRepo) CreateBook(_ context.Context, book model.Book) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now
	r.books[book.ID] = book
	return &book, nil
}

func (r *fakeBookRepo) GetBookByID(_ context.Context, id primitive.ObjectID) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &book, nil
}

func (r *fakeBookRepo) ListBooks(_ context.Context, page query.Page, filter query.BookFilter) ([]model.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []model.Book{}
	needle := strings.ToLower(filter.Search)
	for _, book := range r.books {
		if needle != "" &&
			!strings.Contains(strings.ToLower(book.Title), needle) &&
			!strings.Contains(strings.ToLower(book.Author), needle) {
			continue
		}
		if filter.Author != "" && book.Author != filter.Author {
			continue
		}
		if filter.MinPrice != nil && book.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && book.Price > *filter.MaxPrice {
			continue
		}
		matched = append(matched, book)
	}
	sort.Slice(matched, func(i, j int) bool {
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0
	})
	total := int64(len(matched))
	if page.Skip >= len(matched) {
		return []model.Book{}, total, nil
	}
	matched = matched[page.Skip:]
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}
	return matched, total, nil
}

func (r *fakeBookRepo) UpdateBook(_ context.Context, id primitive.ObjectID, set bson.D) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for _, e := range set {
		switch e.Key {
		case "title":
			book.Title = e.Value.(string)
		case "author":
			book.Author = e.Value.(string)
		case "description":
			book.Description = e.Value.(string)
		case "isbn":
			book.ISBN = e.Value.(string)
		case "published_year":
			book.PublishedYear = e.Value.(int)
		case "price":
			book.Price = e.Value.(float64)
		case "updated_at":
			book.UpdatedAt = e.Value.(time.Time)
		}
	}
	r.books[id] = book
	return &book, nil
}

func (r *fakeBookRepo) DeleteBook(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.books, id)
	return nil
}

type testEnv struct {
	router *gin.Engine
	users  *fakeUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens, err := service.NewTokenService(
		config.AuthConfig{JWTSecret: "handler-test-secret", JWTAccessTTL: "30m"},
		service.NewMemoryRevocationStore(),
	)
	require.NoError(t, err)

	users := newFakeUserRepo()
	books := newFakeBookRepo()

	userService := service.NewUserService(users, logger)
	bookService := service.NewBookService(books, logger)
	authService := service.NewAuthService(userService, tokens)

	router := gin.New()
	SetupRoutes(
		router,
		authService,
		NewAuthHandler(authService),
		NewUsersHandler(userService),
		NewBooksHandler(bookService),
		"",
	)

	return &testEnv{router: router, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, body, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonDecode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func (e *testEnv) registerAndLogin(t *testing.T) string {
	t.Helper()
	w := e.do(t, "POST", "/api/v1/auth/register",
		`{"email":"john@example.com","username":"johndoe","password":"password123","full_name":"John Doe"}`,
		"application/json", "")
	require.Equal(t, 201, w.Code)

	w = e.do(t, "POST", "/api/v1/auth/login",
		"username=johndoe&password=password123",
		"application/x-www-form-urlencoded", "")
	require.Equal(t, 200, w.Code)

	var resp model.LoginResponse
	require.NoError(t, jsonDecode(w.Body, &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}
