package service

import (
	"context"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/messages"
	"github.com/Rrens/shoplist/internal/presenter"
	"github.com/Rrens/shoplist/internal/transport"
	"github.com/rs/zerolog/log"
)

// DeleteService runs the multi-select deletion workflow: a private panel per
// user, selection toggles against it, and a commit that applies the selection
// to the list. Actions referencing any message other than the live panel are
// stale and ignored.
type DeleteService struct {
	items    domain.ItemRepository
	pointers domain.PointerRepository
	sessions domain.SessionRepository
	tx       transport.Transport
	notifier *Notifier
	list     *ListService
}

// NewDeleteService creates a new delete service
func NewDeleteService(
	items domain.ItemRepository,
	pointers domain.PointerRepository,
	sessions domain.SessionRepository,
	tx transport.Transport,
	notifier *Notifier,
	list *ListService,
) *DeleteService {
	return &DeleteService{
		items:    items,
		pointers: pointers,
		sessions: sessions,
		tx:       tx,
		notifier: notifier,
		list:     list,
	}
}

// EnterInput describes who is starting a delete session and where.
type EnterInput struct {
	UserID   int64
	UserName string
	ChatName string
	ListID   int64
	// OriginChatID is where the command arrived; DMChatID is the user's
	// private chat, where the panel goes. They coincide in private chats.
	OriginChatID int64
	DMChatID     int64
}

// Enter starts a delete session for the user. The panel is sent first and the
// session is recorded only once delivery succeeds, so a failed DM leaves no
// half-open session behind. Any previous session the user had, on any list,
// is retired.
func (s *DeleteService) Enter(ctx context.Context, in EnterInput) error {
	ptr, err := s.pointers.Get(ctx, in.ListID)
	if err != nil {
		return fmt.Errorf("failed to load pointer: %w", err)
	}
	if ptr == nil {
		s.notifier.Transient(ctx, in.OriginChatID, messages.NoActiveListToEdit)
		return nil
	}

	if err := s.retireSession(ctx, in.UserID); err != nil {
		return err
	}

	items, err := s.items.List(ctx, in.ListID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	selected := make(map[int64]struct{})
	prompt, kb := presenter.DeleteSelect(items, selected)
	panelText := messages.DeleteDMText(in.ChatName, prompt)

	panel, err := s.tx.Send(ctx, in.DMChatID, panelText, &kb)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", in.UserID).Msg("failed to deliver delete panel")
		s.notifier.Transient(ctx, in.OriginChatID, messages.DeleteDMFailed)
		return nil
	}

	session := &domain.DeleteSession{
		UserID:   in.UserID,
		ListID:   in.ListID,
		Selected: selected,
		Panel:    &panel,
	}

	if in.OriginChatID != in.DMChatID {
		notice, err := s.tx.Send(ctx, in.OriginChatID, messages.DeleteUserSelectingText(in.UserName), nil)
		if err != nil {
			log.Debug().Err(err).Int64("chat_id", in.OriginChatID).Msg("failed to post selection notice")
		} else {
			session.Notice = &notice
		}
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return fmt.Errorf("failed to store delete session: %w", err)
	}
	return nil
}

// ToggleSelection flips one item in the user's selection and refreshes the
// panel controls. Toggles arriving from anything but the live panel are
// dropped without effect.
func (s *DeleteService) ToggleSelection(ctx context.Context, userID int64, panel domain.MessageRef, itemID int64) error {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load delete session: %w", err)
	}
	if session == nil || session.Panel == nil || *session.Panel != panel {
		return nil
	}

	session.ToggleSelected(itemID)
	if err := s.sessions.UpdateSelection(ctx, userID, session.Selected); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}

	items, err := s.items.List(ctx, session.ListID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	_, kb := presenter.DeleteSelect(items, session.Selected)
	if err := s.tx.EditKeyboard(ctx, panel, &kb); err != nil {
		return fmt.Errorf("failed to refresh delete panel: %w", err)
	}
	return nil
}

// Commit applies the user's selection, refreshes the list message, and tears
// the session down. A commit from an orphaned panel (no session) just removes
// the panel; a commit from a superseded panel is ignored so it cannot touch
// the newer session's list.
func (s *DeleteService) Commit(ctx context.Context, userID int64, panel domain.MessageRef) error {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load delete session: %w", err)
	}
	if session == nil {
		s.notifier.TryDelete(ctx, &panel)
		return nil
	}
	if session.Panel == nil || *session.Panel != panel {
		return nil
	}

	if ids := session.SelectedIDs(); len(ids) > 0 {
		if _, err := s.items.DeleteMany(ctx, session.ListID, ids); err != nil {
			return fmt.Errorf("failed to delete selected items: %w", err)
		}
	}

	if err := s.list.Refresh(ctx, session.ListID); err != nil {
		return err
	}

	s.notifier.TryDelete(ctx, session.Notice)
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear delete session: %w", err)
	}
	s.notifier.TryDelete(ctx, &panel)
	return nil
}

// retireSession tears down the user's previous session, if any. The old panel
// and notice may already be gone; their removal is best-effort.
func (s *DeleteService) retireSession(ctx context.Context, userID int64) error {
	prev, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load delete session: %w", err)
	}
	if prev == nil {
		return nil
	}
	s.notifier.TryDelete(ctx, prev.Panel)
	s.notifier.TryDelete(ctx, prev.Notice)
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear delete session: %w", err)
	}
	return nil
}
