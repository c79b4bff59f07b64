package sqlite

import (
	"context"
	"testing"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestItems_AddListOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	first, err := repo.Add(ctx, 42, "Apples")
	require.NoError(t, err)
	_, err = repo.Add(ctx, 42, "Milk")
	require.NoError(t, err)

	items, err := repo.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Apples", items[0].Text)
	assert.Equal(t, first.ID, items[0].ID)
	assert.False(t, items[0].Done)
}

func TestItems_CrossListIsolation(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	item, err := repo.Add(ctx, 1, "Milk")
	require.NoError(t, err)

	// Mutations scoped to another list must not touch it.
	affected, err := repo.Toggle(ctx, 2, item.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, 2, item.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.DeleteMany(ctx, 2, []int64{item.ID})
	require.NoError(t, err)
	assert.Zero(t, affected)

	items, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Done)
}

func TestItems_ToggleFlipsDone(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	item, err := repo.Add(ctx, 1, "Milk")
	require.NoError(t, err)

	affected, err := repo.Toggle(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	items, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.True(t, items[0].Done)

	_, err = repo.Toggle(ctx, 1, item.ID)
	require.NoError(t, err)
	items, _ = repo.List(ctx, 1)
	assert.False(t, items[0].Done)
}

func TestItems_DeleteManyAndEmptyInput(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	a, _ := repo.Add(ctx, 1, "A")
	b, _ := repo.Add(ctx, 1, "B")
	_, _ = repo.Add(ctx, 1, "C")

	affected, err := repo.DeleteMany(ctx, 1, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.DeleteMany(ctx, 1, []int64{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	items, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].Text)
}

func TestItems_DeleteDone(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	a, _ := repo.Add(ctx, 1, "A")
	_, _ = repo.Add(ctx, 1, "B")
	_, err := repo.Toggle(ctx, 1, a.ID)
	require.NoError(t, err)

	affected, err := repo.DeleteDone(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	items, _ := repo.List(ctx, 1)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Text)
}

func TestItems_DeleteAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	_, _ = repo.Add(ctx, 1, "A")
	_, _ = repo.Add(ctx, 1, "B")
	_, _ = repo.Add(ctx, 2, "Other")

	affected, err := repo.DeleteAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	other, _ := repo.List(ctx, 2)
	assert.Len(t, other, 1)
}

func TestPointer_Roundtrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewPointerRepository(db)
	ctx := context.Background()

	ref, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, ref)

	require.NoError(t, repo.Set(ctx, 1, domain.MessageRef{ChatID: 1, MessageID: 99}))
	ref, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, int64(99), ref.MessageID)

	// Set overwrites: a list never has more than one pointer.
	require.NoError(t, repo.Set(ctx, 1, domain.MessageRef{ChatID: 1, MessageID: 100}))
	ref, _ = repo.Get(ctx, 1)
	assert.Equal(t, int64(100), ref.MessageID)

	require.NoError(t, repo.Clear(ctx, 1))
	ref, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestSession_Roundtrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, s)

	session := &domain.DeleteSession{
		UserID:   7,
		ListID:   10,
		Selected: map[int64]struct{}{},
		Panel:    &domain.MessageRef{ChatID: 7, MessageID: 4},
	}
	require.NoError(t, repo.Put(ctx, session))

	s, err = repo.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(10), s.ListID)
	assert.Empty(t, s.Selected)
	assert.Nil(t, s.Notice)
	require.NotNil(t, s.Panel)
	assert.Equal(t, int64(4), s.Panel.MessageID)

	require.NoError(t, repo.UpdateSelection(ctx, 7, map[int64]struct{}{5: {}, 7: {}}))
	s, _ = repo.Get(ctx, 7)
	assert.Equal(t, map[int64]struct{}{5: {}, 7: {}}, s.Selected)

	// Put replaces the whole session on re-entry.
	session.ListID = 20
	session.Notice = &domain.MessageRef{ChatID: 20, MessageID: 3}
	require.NoError(t, repo.Put(ctx, session))
	s, _ = repo.Get(ctx, 7)
	assert.Equal(t, int64(20), s.ListID)
	assert.Empty(t, s.Selected)
	require.NotNil(t, s.Notice)

	require.NoError(t, repo.Delete(ctx, 7))
	s, err = repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestTokens_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 42, "token-a", 100))
	require.NoError(t, repo.Create(ctx, 42, "token-b", 200))

	tokens, err := repo.ListByList(ctx, 42)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "token-b", tokens[0].Token)

	listID, ok, err := repo.Use(ctx, "token-a", 555)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), listID)

	tokens, _ = repo.ListByList(ctx, 42)
	require.NotNil(t, tokens[1].LastUsedAt)
	assert.Equal(t, int64(555), *tokens[1].LastUsedAt)

	revoked, err := repo.Revoke(ctx, 42, "token-a", 600)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, ok, err = repo.Use(ctx, "token-a", 700)
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoking from the wrong list is a miss.
	revoked, err = repo.Revoke(ctx, 1, "token-b", 600)
	require.NoError(t, err)
	assert.False(t, revoked)
}
