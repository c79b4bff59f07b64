package service

import (
	"context"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/messages"
	"github.com/Rrens/shoplist/internal/presenter"
	"github.com/Rrens/shoplist/internal/textutil"
	"github.com/Rrens/shoplist/internal/transport"
	"github.com/rs/zerolog/log"
)

// RenderCache skips edits whose payload matches what a message already shows.
// Implementations are best-effort; a miss only costs a redundant edit.
type RenderCache interface {
	IsCurrent(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard) bool
	Store(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard)
}

// ListService owns the rendered list message per chat: sending fresh copies,
// updating in place through the stored pointer, and the archive operations
// that retire a list.
type ListService struct {
	items    domain.ItemRepository
	pointers domain.PointerRepository
	tx       transport.Transport
	notifier *Notifier
	cache    RenderCache
}

// NewListService creates a new list service. cache may be nil.
func NewListService(
	items domain.ItemRepository,
	pointers domain.PointerRepository,
	tx transport.Transport,
	notifier *Notifier,
	cache RenderCache,
) *ListService {
	return &ListService{
		items:    items,
		pointers: pointers,
		tx:       tx,
		notifier: notifier,
		cache:    cache,
	}
}

// SendFresh delivers a brand-new list message to the chat and repoints the
// list at it. Any previous list message is deleted first, so the list is
// displayed by at most one message. An empty list still gets a message, the
// add-an-item hint, and the pointer follows it.
func (s *ListService) SendFresh(ctx context.Context, listID, chatID int64) error {
	prev, err := s.pointers.Get(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load pointer: %w", err)
	}
	s.notifier.TryDelete(ctx, prev)

	items, err := s.items.List(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	var (
		text string
		kb   *domain.Keyboard
	)
	if len(items) == 0 {
		text = messages.ListEmptyAddItem
	} else {
		rendered, controls := presenter.Toggle(items)
		text, kb = rendered, &controls
	}

	ref, err := s.tx.Send(ctx, chatID, text, kb)
	if err != nil {
		return fmt.Errorf("failed to send list: %w", err)
	}

	if err := s.pointers.Set(ctx, listID, ref); err != nil {
		return fmt.Errorf("failed to store pointer: %w", err)
	}
	if s.cache != nil {
		s.cache.Store(ctx, ref, text, kb)
	}
	return nil
}

// UpdateMessage re-renders the list into the message it already lives in.
// When the list has emptied out the controls are stripped, since there is
// nothing left to toggle. Edit failures are logged and swallowed; the pointer
// is never changed here.
func (s *ListService) UpdateMessage(ctx context.Context, listID int64, ref domain.MessageRef) error {
	items, err := s.items.List(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	if len(items) == 0 {
		if err := s.tx.Edit(ctx, ref, messages.ListNowEmpty, nil); err != nil {
			log.Warn().Err(err).Int64("list_id", listID).Msg("failed to edit list message")
		}
		return nil
	}

	text, kb := presenter.Toggle(items)
	if s.cache != nil && s.cache.IsCurrent(ctx, ref, text, &kb) {
		return nil
	}
	if err := s.tx.Edit(ctx, ref, text, &kb); err != nil {
		log.Warn().Err(err).Int64("list_id", listID).Msg("failed to edit list message")
		return nil
	}
	if s.cache != nil {
		s.cache.Store(ctx, ref, text, &kb)
	}
	return nil
}

// Refresh updates the list's current message if one exists. Lists without a
// pointer have nothing on screen, so there is nothing to do.
func (s *ListService) Refresh(ctx context.Context, listID int64) error {
	ref, err := s.pointers.Get(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load pointer: %w", err)
	}
	if ref == nil {
		return nil
	}
	return s.UpdateMessage(ctx, listID, *ref)
}

// AddItems appends the texts to the list and sends a fresh rendering. Texts
// are capitalized; blank entries are dropped.
func (s *ListService) AddItems(ctx context.Context, listID, chatID int64, texts []string) error {
	var cleaned []string
	for _, t := range texts {
		t = textutil.CleanLine(t)
		if t == "" {
			continue
		}
		cleaned = append(cleaned, textutil.Capitalize(t))
	}
	if len(cleaned) == 0 {
		return nil
	}

	if _, err := s.items.AddMany(ctx, listID, cleaned); err != nil {
		return fmt.Errorf("failed to add items: %w", err)
	}
	return s.SendFresh(ctx, listID, chatID)
}

// Share sends the list as plain bulleted text with no controls, for copying
// elsewhere. The shared copy is never tracked by the pointer.
func (s *ListService) Share(ctx context.Context, listID, chatID int64) error {
	items, err := s.items.List(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	if len(items) == 0 {
		s.notifier.Transient(ctx, chatID, messages.ListEmpty)
		return nil
	}

	if _, err := s.tx.Send(ctx, chatID, presenter.Plain(items), nil); err != nil {
		return fmt.Errorf("failed to send shared list: %w", err)
	}
	return nil
}

// Archive freezes the current list message into a permanent archived copy
// with the controls stripped, then clears the items so the chat starts over.
// Without a rendered list there is nothing to freeze.
func (s *ListService) Archive(ctx context.Context, listID, chatID int64) error {
	ref, err := s.pointers.Get(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load pointer: %w", err)
	}
	items, err := s.items.List(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	if ref == nil || len(items) == 0 {
		s.notifier.Transient(ctx, chatID, messages.NoActiveListToArchive)
		return nil
	}

	final, _ := presenter.Toggle(items)
	archived := messages.ArchivedListHeader + "\n" + final
	if err := s.tx.Edit(ctx, *ref, archived, nil); err != nil {
		log.Warn().Err(err).Int64("list_id", listID).Msg("failed to freeze archived list message")
	}

	if _, err := s.items.DeleteAll(ctx, listID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if err := s.pointers.Clear(ctx, listID); err != nil {
		return fmt.Errorf("failed to clear pointer: %w", err)
	}

	if _, err := s.tx.Send(ctx, chatID, messages.ListArchived, nil); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

// ArchiveDone archives only the checked items, keeping the rest active.
func (s *ListService) ArchiveDone(ctx context.Context, listID, chatID int64) error {
	items, err := s.items.List(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	var done []domain.Item
	for _, item := range items {
		if item.Done {
			done = append(done, item)
		}
	}
	if len(done) == 0 {
		s.notifier.Transient(ctx, chatID, messages.NoCheckedItemsToArchive)
		return nil
	}

	archived := messages.ArchivedListHeader + "\n" + presenter.Plain(done)
	if _, err := s.tx.Send(ctx, chatID, archived, nil); err != nil {
		return fmt.Errorf("failed to send archived items: %w", err)
	}

	if _, err := s.items.DeleteDone(ctx, listID); err != nil {
		return fmt.Errorf("failed to remove checked items: %w", err)
	}
	if err := s.Refresh(ctx, listID); err != nil {
		return err
	}

	s.notifier.Transient(ctx, chatID, messages.CheckedItemsArchived)
	return nil
}

// Nuke deletes the list outright, leaving no archived copy behind.
func (s *ListService) Nuke(ctx context.Context, listID, chatID int64) error {
	if _, err := s.items.DeleteAll(ctx, listID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if err := s.retirePointer(ctx, listID); err != nil {
		return err
	}

	s.notifier.Transient(ctx, chatID, messages.ListNuked)
	return nil
}

func (s *ListService) retirePointer(ctx context.Context, listID int64) error {
	ref, err := s.pointers.Get(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to load pointer: %w", err)
	}
	if ref == nil {
		return nil
	}
	s.notifier.TryDelete(ctx, ref)
	if err := s.pointers.Clear(ctx, listID); err != nil {
		return fmt.Errorf("failed to clear pointer: %w", err)
	}
	return nil
}
