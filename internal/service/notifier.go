package service

import (
	"context"
	"time"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/transport"
	"github.com/rs/zerolog/log"
)

// Notifier wraps the transport with the two best-effort message patterns the
// bot leans on: deleting a message that may already be gone, and sending a
// notice that removes itself after a short delay.
type Notifier struct {
	tx    transport.Transport
	delay time.Duration
}

// NewNotifier creates a new notifier
func NewNotifier(tx transport.Transport, delay time.Duration) *Notifier {
	return &Notifier{tx: tx, delay: delay}
}

// TryDelete deletes a message, swallowing failures. Nil refs are a no-op so
// callers can pass optional session refs directly.
func (n *Notifier) TryDelete(ctx context.Context, ref *domain.MessageRef) {
	if ref == nil {
		return
	}
	if err := n.tx.Delete(ctx, *ref); err != nil {
		log.Debug().
			Err(err).
			Int64("chat_id", ref.ChatID).
			Int64("message_id", ref.MessageID).
			Msg("failed to delete message")
	}
}

// Transient sends a plain message and schedules its deletion after the
// configured delay. Delivery failures are logged, not returned: transient
// notices never block the workflow that produced them.
func (n *Notifier) Transient(ctx context.Context, chatID int64, text string) {
	ref, err := n.tx.Send(ctx, chatID, text, nil)
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send transient message")
		return
	}

	if n.delay <= 0 {
		return
	}

	time.AfterFunc(n.delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		n.TryDelete(ctx, &ref)
	})
}
