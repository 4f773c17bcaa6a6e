package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookstore/backend/internal/config"
	"github.com/bookstore/backend/internal/model"
)

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens. Issuance is
// stateless; logout goes through the injected RevocationStore.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
	revoked   RevocationStore
}

func NewTokenService(cfg config.AuthConfig, revoked RevocationStore) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: accessTTL,
		revoked:   revoked,
	}, nil
}

func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature, expiry and the revocation set, and resolves
// the token to its subject.
func (s *TokenService) Validate(ctx context.Context, tokenStr string) (*model.AuthUser, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{
		ID:       userID,
		Username: claims.Username,
	}, nil
}

// Revoke puts the token's id into the revocation set for its remaining
// lifetime. Subsequent Validate calls for the same token fail.
func (s *TokenService) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (s *TokenService) parse(tokenStr string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
