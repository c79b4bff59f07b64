// Package bot receives Telegram updates and routes them to the list and
// delete workflows. One chat is one list: the chat id doubles as the list id.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/extract"
	"github.com/Rrens/shoplist/internal/messages"
	"github.com/Rrens/shoplist/internal/presenter"
	"github.com/Rrens/shoplist/internal/service"
	"github.com/Rrens/shoplist/internal/textutil"
	"github.com/Rrens/shoplist/internal/transport/telegram"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bot drives the long-poll loop and dispatches updates.
type Bot struct {
	client      *telegram.Client
	items       domain.ItemRepository
	list        *service.ListService
	delete      *service.DeleteService
	tokens      *service.TokenService
	extractor   *extract.Router
	notifier    *service.Notifier
	pollTimeout time.Duration
}

// New creates a new bot. extractor may be nil when AI parsing is disabled.
func New(
	client *telegram.Client,
	items domain.ItemRepository,
	list *service.ListService,
	deleteService *service.DeleteService,
	tokens *service.TokenService,
	extractor *extract.Router,
	notifier *service.Notifier,
	pollTimeout time.Duration,
) *Bot {
	return &Bot{
		client:      client,
		items:       items,
		list:        list,
		delete:      deleteService,
		tokens:      tokens,
		extractor:   extractor,
		notifier:    notifier,
		pollTimeout: pollTimeout,
	}
}

// Run long-polls for updates until the context is cancelled. Each update is
// handled on its own goroutine so a slow chat cannot stall the others.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("polling failed, backing off")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update telegram.Update) {
	// Updates are handled concurrently, so each gets a trace id to tie its
	// log lines together.
	traceID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("trace_id", traceID).Int64("update_id", update.UpdateID).Msg("update handler panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	ctx = log.With().Str("trace_id", traceID).Logger().WithContext(ctx)

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	listID := chatID

	cmd, args := parseCommand(msg.Text)
	if cmd == "" {
		b.report(ctx, b.list.AddItems(ctx, listID, chatID, textutil.SplitLines(msg.Text)), chatID, "add items")
		return
	}

	switch cmd {
	case "start", "help":
		if _, err := b.client.SendHTML(ctx, chatID, messages.HelpText); err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send help")
		}
	case "list":
		b.report(ctx, b.list.SendFresh(ctx, listID, chatID), chatID, "show list")
	case "share":
		b.report(ctx, b.list.Share(ctx, listID, chatID), chatID, "share list")
	case "archive":
		b.report(ctx, b.list.Archive(ctx, listID, chatID), chatID, "archive list")
	case "done":
		b.report(ctx, b.list.ArchiveDone(ctx, listID, chatID), chatID, "archive checked items")
	case "nuke":
		// The command message goes too, leaving no trace of the list.
		cmdRef := msg.Ref()
		b.notifier.TryDelete(ctx, &cmdRef)
		b.report(ctx, b.list.Nuke(ctx, listID, chatID), chatID, "nuke list")
	case "delete":
		b.handleDeleteCommand(ctx, msg, listID)
	case "parse":
		b.handleParse(ctx, listID, chatID, args)
	case "token":
		b.handleTokenIssue(ctx, listID, chatID)
	case "tokens":
		b.handleTokenList(ctx, listID, chatID)
	case "revoke":
		b.handleTokenRevoke(ctx, listID, chatID, args)
	}
}

func (b *Bot) handleDeleteCommand(ctx context.Context, msg *telegram.Message, listID int64) {
	if msg.From == nil {
		return
	}

	chatName := msg.Chat.Title
	if chatName == "" {
		chatName = messages.DefaultChatName
	}

	err := b.delete.Enter(ctx, service.EnterInput{
		UserID:       msg.From.ID,
		UserName:     msg.From.FirstName,
		ChatName:     chatName,
		ListID:       listID,
		OriginChatID: msg.Chat.ID,
		DMChatID:     msg.From.ID,
	})
	b.report(ctx, err, msg.Chat.ID, "start delete session")
}

// handleParse runs the AI extractor over the command's argument text, falling
// back to the local splitter when no provider is available or it comes back
// empty-handed.
func (b *Bot) handleParse(ctx context.Context, listID, chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		return
	}

	items := b.extractItems(ctx, args)
	if len(items) == 0 {
		items = textutil.SplitItems(args)
	}
	if len(items) == 0 {
		return
	}

	b.report(ctx, b.list.AddItems(ctx, listID, chatID, items), chatID, "add parsed items")
}

func (b *Bot) extractItems(ctx context.Context, text string) []string {
	if b.extractor == nil {
		return nil
	}

	provider, err := b.extractor.GetProvider("")
	if err != nil {
		log.Debug().Err(err).Msg("no extraction provider available")
		return nil
	}

	items, err := provider.ExtractItems(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.Name()).Msg("extraction failed")
		return nil
	}
	return items
}

func (b *Bot) handleTokenIssue(ctx context.Context, listID, chatID int64) {
	token, err := b.tokens.Issue(ctx, listID)
	if err != nil {
		b.report(ctx, err, chatID, "issue token")
		return
	}
	if _, err := b.client.Send(ctx, chatID, messages.TokenIssued+"\n"+token, nil); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to deliver token")
	}
}

func (b *Bot) handleTokenList(ctx context.Context, listID, chatID int64) {
	tokens, err := b.tokens.List(ctx, listID)
	if err != nil {
		b.report(ctx, err, chatID, "list tokens")
		return
	}
	if len(tokens) == 0 {
		b.notifier.Transient(ctx, chatID, messages.TokensEmpty)
		return
	}

	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(abbreviate(t.Token))
		sb.WriteString(" issued ")
		sb.WriteString(time.Unix(t.IssuedAt, 0).UTC().Format("2006-01-02"))
		if t.RevokedAt != nil {
			sb.WriteString(" (revoked)")
		} else if t.LastUsedAt != nil {
			sb.WriteString(", last used ")
			sb.WriteString(time.Unix(*t.LastUsedAt, 0).UTC().Format("2006-01-02"))
		}
		sb.WriteString("\n")
	}
	if _, err := b.client.Send(ctx, chatID, sb.String(), nil); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send token list")
	}
}

func (b *Bot) handleTokenRevoke(ctx context.Context, listID, chatID int64, args string) {
	token := strings.TrimSpace(args)
	if token == "" {
		b.notifier.Transient(ctx, chatID, messages.TokenRevokeUsage)
		return
	}

	revoked, err := b.tokens.Revoke(ctx, listID, token)
	if err != nil {
		b.report(ctx, err, chatID, "revoke token")
		return
	}
	if revoked {
		b.notifier.Transient(ctx, chatID, messages.TokenRevoked)
	} else {
		b.notifier.Transient(ctx, chatID, messages.TokenNotFound)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	defer func() {
		if err := b.client.AnswerCallback(ctx, cb.ID); err != nil {
			log.Debug().Err(err).Msg("failed to answer callback")
		}
	}()

	if cb.Message == nil {
		return
	}
	ref := cb.Message.Ref()

	switch {
	case cb.Data == presenter.DeleteCommitData:
		b.report(ctx, b.delete.Commit(ctx, cb.From.ID, ref), ref.ChatID, "commit delete")

	case strings.HasPrefix(cb.Data, presenter.DeletePrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, presenter.DeletePrefix), 10, 64)
		if err != nil {
			return
		}
		b.report(ctx, b.delete.ToggleSelection(ctx, cb.From.ID, ref, id), ref.ChatID, "toggle selection")

	default:
		id, err := strconv.ParseInt(cb.Data, 10, 64)
		if err != nil {
			return
		}
		b.toggleItem(ctx, ref, id)
	}
}

// toggleItem flips one item and re-renders the message the button lives on.
// The chat id scopes the mutation, so a button from another chat's render
// cannot reach this list.
func (b *Bot) toggleItem(ctx context.Context, ref domain.MessageRef, id int64) {
	affected, err := b.items.Toggle(ctx, ref.ChatID, id)
	if err != nil {
		log.Error().Err(err).Int64("item_id", id).Msg("failed to toggle item")
		return
	}
	if affected == 0 {
		return
	}
	b.report(ctx, b.list.UpdateMessage(ctx, ref.ChatID, ref), ref.ChatID, "update list message")
}

func (b *Bot) report(ctx context.Context, err error, chatID int64, op string) {
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg(fmt.Sprintf("failed to %s", op))
	}
}

// abbreviate shortens a token for display; full values only appear when
// issued.
func abbreviate(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "…"
}

// parseCommand splits "/cmd@botname args" into its name and argument text.
// Returns an empty name for plain messages.
func parseCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}

	cmd, args, _ := strings.Cut(text[1:], " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}
