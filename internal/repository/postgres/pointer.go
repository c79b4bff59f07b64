package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PointerRepository implements domain.PointerRepository
type PointerRepository struct {
	pool *pgxpool.Pool
}

// NewPointerRepository creates a new render pointer repository
func NewPointerRepository(db *DB) *PointerRepository {
	return &PointerRepository{pool: db.Pool}
}

func (r *PointerRepository) Get(ctx context.Context, listID int64) (*domain.MessageRef, error) {
	query := `SELECT chat_id, message_id FROM render_pointers WHERE list_id = $1`
	var ref domain.MessageRef
	err := r.pool.QueryRow(ctx, query, listID).Scan(&ref.ChatID, &ref.MessageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render pointer: %w", err)
	}
	return &ref, nil
}

func (r *PointerRepository) Set(ctx context.Context, listID int64, ref domain.MessageRef) error {
	query := `
		INSERT INTO render_pointers (list_id, chat_id, message_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (list_id) DO UPDATE
		SET chat_id = excluded.chat_id, message_id = excluded.message_id
	`
	if _, err := r.pool.Exec(ctx, query, listID, ref.ChatID, ref.MessageID); err != nil {
		return fmt.Errorf("failed to set render pointer: %w", err)
	}
	return nil
}

func (r *PointerRepository) Clear(ctx context.Context, listID int64) error {
	query := `DELETE FROM render_pointers WHERE list_id = $1`
	if _, err := r.pool.Exec(ctx, query, listID); err != nil {
		return fmt.Errorf("failed to clear render pointer: %w", err)
	}
	return nil
}
