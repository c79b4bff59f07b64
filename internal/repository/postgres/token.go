package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository implements domain.TokenRepository
type TokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new API token repository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{pool: db.Pool}
}

func (r *TokenRepository) Create(ctx context.Context, listID int64, token string, issuedAt int64) error {
	query := `INSERT INTO api_tokens (list_id, token, issued_at) VALUES ($1, $2, $3)`
	if _, err := r.pool.Exec(ctx, query, listID, token, issuedAt); err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

func (r *TokenRepository) ListByList(ctx context.Context, listID int64) ([]domain.APIToken, error) {
	query := `
		SELECT id, list_id, token, issued_at, last_used_at, revoked_at
		FROM api_tokens
		WHERE list_id = $1
		ORDER BY issued_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.APIToken
	for rows.Next() {
		var t domain.APIToken
		if err := rows.Scan(&t.ID, &t.ListID, &t.Token, &t.IssuedAt, &t.LastUsedAt, &t.RevokedAt); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *TokenRepository) Revoke(ctx context.Context, listID int64, token string, revokedAt int64) (bool, error) {
	query := `
		UPDATE api_tokens SET revoked_at = $1
		WHERE list_id = $2 AND token = $3 AND revoked_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, revokedAt, listID, token)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TokenRepository) Use(ctx context.Context, token string, usedAt int64) (int64, bool, error) {
	query := `
		UPDATE api_tokens SET last_used_at = $1
		WHERE token = $2 AND revoked_at IS NULL
		RETURNING list_id
	`
	var listID int64
	err := r.pool.QueryRow(ctx, query, usedAt, token).Scan(&listID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve token: %w", err)
	}
	return listID, true, nil
}
