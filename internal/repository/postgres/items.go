package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemRepository implements domain.ItemRepository
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{pool: db.Pool}
}

func (r *ItemRepository) Add(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	query := `
		INSERT INTO items (list_id, text)
		VALUES ($1, $2)
		RETURNING id
	`
	item := &domain.Item{ListID: listID, Text: text}
	if err := r.pool.QueryRow(ctx, query, listID, text).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	return item, nil
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
	query := `
		SELECT id, list_id, text, done
		FROM items
		WHERE list_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, listID)
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
	query := `UPDATE items SET done = NOT done WHERE id = $1 AND list_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to toggle item: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ItemRepository) Delete(ctx context.Context, listID, id int64) (int64, error) {
	query := `DELETE FROM items WHERE id = $1 AND list_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ItemRepository) DeleteMany(ctx context.Context, listID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM items WHERE list_id = $1 AND id = ANY($2)`
	tag, err := r.pool.Exec(ctx, query, listID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ItemRepository) DeleteDone(ctx context.Context, listID int64) (int64, error) {
	query := `DELETE FROM items WHERE list_id = $1 AND done`
	tag, err := r.pool.Exec(ctx, query, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete checked items: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ItemRepository) DeleteAll(ctx context.Context, listID int64) (int64, error) {
	query := `DELETE FROM items WHERE list_id = $1`
	tag, err := r.pool.Exec(ctx, query, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear list: %w", err)
	}
	return tag.RowsAffected(), nil
}
