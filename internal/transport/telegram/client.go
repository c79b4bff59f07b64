// Package telegram is a thin Bot API client covering the calls the bot
// needs: long polling plus the send/edit/delete triple behind
// transport.Transport.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Rrens/shoplist/internal/domain"
)

const defaultBaseURL = "https://api.telegram.org"

// Client talks to the Telegram Bot API over HTTP.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Bot API client. baseURL overrides the production
// endpoint, which the tests use to point at a local server.
func NewClient(token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Update is one inbound event from the Bot API.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// Ref converts the message to the transport-neutral handle.
func (m *Message) Ref() domain.MessageRef {
	return domain.MessageRef{ChatID: m.Chat.ID, MessageID: m.MessageID}
}

type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// IsPrivate reports whether the chat is a one-on-one conversation.
func (c Chat) IsPrivate() bool {
	return c.Type == "private"
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func markup(kb *domain.Keyboard) *inlineKeyboardMarkup {
	if kb == nil {
		return nil
	}
	rows := make([][]inlineKeyboardButton, 0, len(kb.Rows))
	for _, b := range kb.Rows {
		rows = append(rows, []inlineKeyboardButton{{Text: b.Label, CallbackData: b.Data}})
	}
	return &inlineKeyboardMarkup{InlineKeyboard: rows}
}

func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal %s params: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("%s rejected: %s", method, envelope.Description)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

// Send posts a new message and returns its reference.
func (c *Client) Send(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) (domain.MessageRef, error) {
	return c.send(ctx, chatID, text, kb, "")
}

// SendHTML posts a message with HTML formatting enabled.
func (c *Client) SendHTML(ctx context.Context, chatID int64, text string) (domain.MessageRef, error) {
	return c.send(ctx, chatID, text, nil, "HTML")
}

func (c *Client) send(ctx context.Context, chatID int64, text string, kb *domain.Keyboard, parseMode string) (domain.MessageRef, error) {
	params := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if m := markup(kb); m != nil {
		params["reply_markup"] = m
	}
	if parseMode != "" {
		params["parse_mode"] = parseMode
	}

	var sent Message
	if err := c.call(ctx, "sendMessage", params, &sent); err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// Edit replaces the text and controls of an existing message. A nil keyboard
// is sent as an empty markup, which strips the controls.
func (c *Client) Edit(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard) error {
	params := map[string]any{
		"chat_id":    ref.ChatID,
		"message_id": ref.MessageID,
		"text":       text,
	}
	if m := markup(kb); m != nil {
		params["reply_markup"] = m
	} else {
		params["reply_markup"] = inlineKeyboardMarkup{InlineKeyboard: [][]inlineKeyboardButton{}}
	}
	return c.call(ctx, "editMessageText", params, nil)
}

// EditKeyboard replaces only the controls under a message, leaving its text
// alone. A nil keyboard strips the controls.
func (c *Client) EditKeyboard(ctx context.Context, ref domain.MessageRef, kb *domain.Keyboard) error {
	params := map[string]any{
		"chat_id":    ref.ChatID,
		"message_id": ref.MessageID,
	}
	if m := markup(kb); m != nil {
		params["reply_markup"] = m
	} else {
		params["reply_markup"] = inlineKeyboardMarkup{InlineKeyboard: [][]inlineKeyboardButton{}}
	}
	return c.call(ctx, "editMessageReplyMarkup", params, nil)
}

// Delete removes a message.
func (c *Client) Delete(ctx context.Context, ref domain.MessageRef) error {
	params := map[string]any{
		"chat_id":    ref.ChatID,
		"message_id": ref.MessageID,
	}
	return c.call(ctx, "deleteMessage", params, nil)
}

// GetUpdates long-polls for new updates past offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	params := map[string]any{
		"offset":  offset,
		"timeout": int(timeout.Seconds()),
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// AnswerCallback acknowledges a button press so the client stops its spinner.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": callbackID}, nil)
}
