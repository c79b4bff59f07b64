package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository implements domain.SessionRepository
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new delete session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{pool: db.Pool}
}

func (r *SessionRepository) Get(ctx context.Context, userID int64) (*domain.DeleteSession, error) {
	query := `
		SELECT list_id, selected, notice_chat_id, notice_message_id, panel_chat_id, panel_message_id
		FROM delete_sessions
		WHERE user_id = $1
	`
	var (
		s           domain.DeleteSession
		selected    string
		noticeChat  *int64
		noticeMsg   *int64
		panelChat   *int64
		panelMsgRef *int64
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ListID, &selected, &noticeChat, &noticeMsg, &panelChat, &panelMsgRef,
	)
	if errors.Is(err, pgx.ErrNoRows) {
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
	if panelChat != nil && panelMsgRef != nil {
		s.Panel = &domain.MessageRef{ChatID: *panelChat, MessageID: *panelMsgRef}
	}
	return &s, nil
}

func (r *SessionRepository) Put(ctx context.Context, session *domain.DeleteSession) error {
	query := `
		INSERT INTO delete_sessions (user_id, list_id, selected, notice_chat_id, notice_message_id, panel_chat_id, panel_message_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET list_id = excluded.list_id,
		    selected = excluded.selected,
		    notice_chat_id = excluded.notice_chat_id,
		    notice_message_id = excluded.notice_message_id,
		    panel_chat_id = excluded.panel_chat_id,
		    panel_message_id = excluded.panel_message_id
	`
	var noticeChat, noticeMsg, panelChat, panelMsg *int64
	if session.Notice != nil {
		noticeChat, noticeMsg = &session.Notice.ChatID, &session.Notice.MessageID
	}
	if session.Panel != nil {
		panelChat, panelMsg = &session.Panel.ChatID, &session.Panel.MessageID
	}

	_, err := r.pool.Exec(ctx, query,
		session.UserID,
		session.ListID,
		domain.EncodeSelection(session.Selected),
		noticeChat, noticeMsg,
		panelChat, panelMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to store delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) UpdateSelection(ctx context.Context, userID int64, selected map[int64]struct{}) error {
	query := `UPDATE delete_sessions SET selected = $1 WHERE user_id = $2`
	if _, err := r.pool.Exec(ctx, query, domain.EncodeSelection(selected), userID); err != nil {
		return fmt.Errorf("failed to update delete selection: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM delete_sessions WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear delete session: %w", err)
	}
	return nil
}
