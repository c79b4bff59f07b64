package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	renderCachePrefix = "render:"
	renderCacheTTL    = 24 * time.Hour
)

// RenderCache remembers a digest of the last payload edited into each list
// message, so update-in-place can skip edits that would change nothing.
// Rendering is deterministic, which makes the digest comparison sound.
type RenderCache struct {
	client *Client
}

// NewRenderCache creates a new render cache
func NewRenderCache(client *Client) *RenderCache {
	return &RenderCache{client: client}
}

func digest(text string, kb *domain.Keyboard) string {
	h := sha256.New()
	h.Write([]byte(text))
	if kb != nil {
		for _, b := range kb.Rows {
			h.Write([]byte{0})
			h.Write([]byte(b.Label))
			h.Write([]byte{0})
			h.Write([]byte(b.Data))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func renderKey(ref domain.MessageRef) string {
	return fmt.Sprintf("%s%d:%d", renderCachePrefix, ref.ChatID, ref.MessageID)
}

// IsCurrent reports whether the message already shows the given payload.
// Errors count as a miss so a broken cache only costs redundant edits.
func (c *RenderCache) IsCurrent(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard) bool {
	cached, err := c.client.rdb.Get(ctx, renderKey(ref)).Result()
	if err != nil {
		return false
	}
	return cached == digest(text, kb)
}

// Store records the payload now displayed by the message.
func (c *RenderCache) Store(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard) {
	if err := c.client.rdb.Set(ctx, renderKey(ref), digest(text, kb), renderCacheTTL).Err(); err != nil {
		log.Debug().Err(err).Str("key", renderKey(ref)).Msg("failed to cache render digest")
	}
}
