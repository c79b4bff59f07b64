package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Rrens/shoplist/internal/domain"
)

const tokenBytes = 32

// TokenService issues and resolves the bearer tokens that scope HTTP API
// access to a single list.
type TokenService struct {
	tokens domain.TokenRepository
	now    func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(tokens domain.TokenRepository) *TokenService {
	return &TokenService{tokens: tokens, now: time.Now}
}

// Issue mints a new token for the list and returns its plaintext value.
func (s *TokenService) Issue(ctx context.Context, listID int64) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.tokens.Create(ctx, listID, token, s.now().Unix()); err != nil {
		return "", err
	}
	return token, nil
}

// List returns all tokens issued for the list, revoked ones included.
func (s *TokenService) List(ctx context.Context, listID int64) ([]domain.APIToken, error) {
	return s.tokens.ListByList(ctx, listID)
}

// Revoke marks a token unusable. It reports false when the token does not
// belong to the list or was already revoked.
func (s *TokenService) Revoke(ctx context.Context, listID int64, token string) (bool, error) {
	return s.tokens.Revoke(ctx, listID, token, s.now().Unix())
}

// Resolve maps a presented token to its list and records the use. A revoked
// or unknown token resolves to (0, false, nil).
func (s *TokenService) Resolve(ctx context.Context, token string) (int64, bool, error) {
	return s.tokens.Use(ctx, token, s.now().Unix())
}
