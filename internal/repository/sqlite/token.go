package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
)

// TokenRepository implements domain.TokenRepository
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new API token repository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db.SQL}
}

func (r *TokenRepository) Create(ctx context.Context, listID int64, token string, issuedAt int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_tokens (list_id, token, issued_at) VALUES (?, ?, ?)`,
		listID, token, issuedAt)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

func (r *TokenRepository) ListByList(ctx context.Context, listID int64) ([]domain.APIToken, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, list_id, token, issued_at, last_used_at, revoked_at
		 FROM api_tokens WHERE list_id = ?
		 ORDER BY issued_at DESC, id DESC`, listID)
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
	res, err := r.db.ExecContext(ctx,
		`UPDATE api_tokens SET revoked_at = ?
		 WHERE list_id = ? AND token = ? AND revoked_at IS NULL`,
		revokedAt, listID, token)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *TokenRepository) Use(ctx context.Context, token string, usedAt int64) (int64, bool, error) {
	var listID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT list_id FROM api_tokens WHERE token = ? AND revoked_at IS NULL`, token).
		Scan(&listID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve token: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE api_tokens SET last_used_at = ? WHERE token = ? AND revoked_at IS NULL`,
		usedAt, token); err != nil {
		return 0, false, fmt.Errorf("failed to record token use: %w", err)
	}
	return listID, true, nil
}
