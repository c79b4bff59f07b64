package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
)

// SessionRepository implements domain.SessionRepository
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new delete session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db.SQL}
}

func (r *SessionRepository) Get(ctx context.Context, userID int64) (*domain.DeleteSession, error) {
	var (
		s          domain.DeleteSession
		selected   string
		noticeChat *int64
		noticeMsg  *int64
		panelChat  *int64
		panelMsg   *int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT list_id, selected, notice_chat_id, notice_message_id, panel_chat_id, panel_message_id
		 FROM delete_sessions WHERE user_id = ?`, userID).
		Scan(&s.ListID, &selected, &noticeChat, &noticeMsg, &panelChat, &panelMsg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delete session: %w", err)
	}

	s.UserID = userID
	s.Selected = domain.DecodeSelection(selected)
	if noticeChat != nil && noticeMsg != nil {
		s.Notice = &domain.MessageRef{ChatID: *noticeChat, MessageID: *noticeMsg}
	}
	if panelChat != nil && panelMsg != nil {
		s.Panel = &domain.MessageRef{ChatID: *panelChat, MessageID: *panelMsg}
	}
	return &s, nil
}

func (r *SessionRepository) Put(ctx context.Context, session *domain.DeleteSession) error {
	var noticeChat, noticeMsg, panelChat, panelMsg *int64
	if session.Notice != nil {
		noticeChat, noticeMsg = &session.Notice.ChatID, &session.Notice.MessageID
	}
	if session.Panel != nil {
		panelChat, panelMsg = &session.Panel.ChatID, &session.Panel.MessageID
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO delete_sessions (user_id, list_id, selected, notice_chat_id, notice_message_id, panel_chat_id, panel_message_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		     list_id = excluded.list_id,
		     selected = excluded.selected,
		     notice_chat_id = excluded.notice_chat_id,
		     notice_message_id = excluded.notice_message_id,
		     panel_chat_id = excluded.panel_chat_id,
		     panel_message_id = excluded.panel_message_id`,
		session.UserID, session.ListID, domain.EncodeSelection(session.Selected),
		noticeChat, noticeMsg, panelChat, panelMsg)
	if err != nil {
		return fmt.Errorf("failed to store delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) UpdateSelection(ctx context.Context, userID int64, selected map[int64]struct{}) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE delete_sessions SET selected = ? WHERE user_id = ?`,
		domain.EncodeSelection(selected), userID)
	if err != nil {
		return fmt.Errorf("failed to update delete selection: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM delete_sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear delete session: %w", err)
	}
	return nil
}
