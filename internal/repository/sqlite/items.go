package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rrens/shoplist/internal/domain"
)

// ItemRepository implements domain.ItemRepository
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db.SQL}
}

func (r *ItemRepository) Add(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO items (list_id, text) VALUES (?, ?)`, listID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return &domain.Item{ID: id, ListID: listID, Text: text}, nil
}

func (r *ItemRepository) AddMany(ctx context.Context, listID int64, texts []string) (int64, error) {
	var added int64
	for _, text := range texts {
		if _, err := r.Add(ctx, listID, text); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (r *ItemRepository) List(ctx context.Context, listID int64) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, list_id, text, done FROM items WHERE list_id = ? ORDER BY id`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.ListID, &it.Text, &it.Done); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Toggle(ctx context.Context, listID, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET done = NOT done WHERE id = ? AND list_id = ?`, id, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to toggle item: %w", err)
	}
	return res.RowsAffected()
}

func (r *ItemRepository) Delete(ctx context.Context, listID, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND list_id = ?`, id, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item: %w", err)
	}
	return res.RowsAffected()
}

func (r *ItemRepository) DeleteMany(ctx context.Context, listID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := fmt.Sprintf(`DELETE FROM items WHERE list_id = ? AND id IN (%s)`, placeholders)

	args := make([]any, 0, len(ids)+1)
	args = append(args, listID)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}
	return res.RowsAffected()
}

func (r *ItemRepository) DeleteDone(ctx context.Context, listID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM items WHERE list_id = ? AND done`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete checked items: %w", err)
	}
	return res.RowsAffected()
}

func (r *ItemRepository) DeleteAll(ctx context.Context, listID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE list_id = ?`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear list: %w", err)
	}
	return res.RowsAffected()
}
