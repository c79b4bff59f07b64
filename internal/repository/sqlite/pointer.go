package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
)

// PointerRepository implements domain.PointerRepository
type PointerRepository struct {
	db *sql.DB
}

// NewPointerRepository creates a new render pointer repository
func NewPointerRepository(db *DB) *PointerRepository {
	return &PointerRepository{db: db.SQL}
}

func (r *PointerRepository) Get(ctx context.Context, listID int64) (*domain.MessageRef, error) {
	var ref domain.MessageRef
	err := r.db.QueryRowContext(ctx,
		`SELECT chat_id, message_id FROM render_pointers WHERE list_id = ?`, listID).
		Scan(&ref.ChatID, &ref.MessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render pointer: %w", err)
	}
	return &ref, nil
}

func (r *PointerRepository) Set(ctx context.Context, listID int64, ref domain.MessageRef) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO render_pointers (list_id, chat_id, message_id) VALUES (?, ?, ?)
		 ON CONFLICT(list_id) DO UPDATE SET chat_id = excluded.chat_id, message_id = excluded.message_id`,
		listID, ref.ChatID, ref.MessageID)
	if err != nil {
		return fmt.Errorf("failed to set render pointer: %w", err)
	}
	return nil
}

func (r *PointerRepository) Clear(ctx context.Context, listID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM render_pointers WHERE list_id = ?`, listID); err != nil {
		return fmt.Errorf("failed to clear render pointer: %w", err)
	}
	return nil
}
