// Package transport defines the outbound messaging boundary. The controller
// only ever sends, edits or deletes messages; everything else about the chat
// platform stays behind this interface.
package transport

import (
	"context"

	"github.com/Rrens/shoplist/internal/domain"
)

// Transport delivers message operations to the chat platform. All calls are
// fallible and callers decide whether a failure is fatal; the controllers
// treat most of them as best-effort.
type Transport interface {
	Send(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) (domain.MessageRef, error)
	Edit(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard) error
	// EditKeyboard swaps the controls under a message without touching its text.
	EditKeyboard(ctx context.Context, ref domain.MessageRef, kb *domain.Keyboard) error
	Delete(ctx context.Context, ref domain.MessageRef) error
}
