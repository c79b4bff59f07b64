package domain

import "context"

// ItemRepository is durable CRUD for list entries. Every mutation is scoped
// by list id as well as item id, so an id owned by another list affects zero
// rows rather than erroring.
type ItemRepository interface {
	Add(ctx context.Context, listID int64, text string) (*Item, error)
	AddMany(ctx context.Context, listID int64, texts []string) (int64, error)
	// List returns the list's items in creation order.
	List(ctx context.Context, listID int64) ([]Item, error)
	Toggle(ctx context.Context, listID, id int64) (int64, error)
	Delete(ctx context.Context, listID, id int64) (int64, error)
	DeleteMany(ctx context.Context, listID int64, ids []int64) (int64, error)
	// DeleteDone removes checked items only.
	DeleteDone(ctx context.Context, listID int64) (int64, error)
	DeleteAll(ctx context.Context, listID int64) (int64, error)
}

// PointerRepository tracks which outbound message currently displays a
// list. At most one pointer exists per list; Set overwrites.
type PointerRepository interface {
	Get(ctx context.Context, listID int64) (*MessageRef, error)
	Set(ctx context.Context, listID int64, ref MessageRef) error
	Clear(ctx context.Context, listID int64) error
}

// SessionRepository stores delete sessions keyed by user id. Put replaces
// any existing session for the user.
type SessionRepository interface {
	Get(ctx context.Context, userID int64) (*DeleteSession, error)
	Put(ctx context.Context, session *DeleteSession) error
	UpdateSelection(ctx context.Context, userID int64, selected map[int64]struct{}) error
	Delete(ctx context.Context, userID int64) error
}

// TokenRepository stores API bearer tokens per list.
type TokenRepository interface {
	Create(ctx context.Context, listID int64, token string, issuedAt int64) error
	ListByList(ctx context.Context, listID int64) ([]APIToken, error)
	Revoke(ctx context.Context, listID int64, token string, revokedAt int64) (bool, error)
	// Use resolves an unrevoked token to its list and records the use.
	// A miss returns (0, false, nil).
	Use(ctx context.Context, token string, usedAt int64) (int64, bool, error)
}
