package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookstore/backend/internal/model"
)

// AuthService glues the credential store and the token service together
// for the auth routes and the request guard.
type AuthService struct {
	users  *UserService
	tokens *TokenService
}

func NewAuthService(users *UserService, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	return s.users.Create(ctx, req)
}

// Login verifies the submitted credentials and issues an access token.
// A missing user, inactive account and wrong password all collapse into
// the same ErrUnauthorized so responses cannot be used for enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !user.IsActive {
		return "", ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	return s.tokens.Issue(user)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Authenticate resolves a bearer token to a live user record. Tokens for
// deleted or deactivated users are rejected even before expiry.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	authUser, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.Get(ctx, authUser.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUnauthorized
	}

	return user, nil
}
