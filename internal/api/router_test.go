package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rrens/shoplist/internal/api"
	"github.com/Rrens/shoplist/internal/api/middleware"
	"github.com/Rrens/shoplist/internal/config"
	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/repository/sqlite"
	"github.com/Rrens/shoplist/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport absorbs outbound chat traffic so API tests can run without a
// chat platform behind them.
type fakeTransport struct {
	sent int
}

func (f *fakeTransport) Send(context.Context, int64, string, *domain.Keyboard) (domain.MessageRef, error) {
	f.sent++
	return domain.MessageRef{ChatID: 1, MessageID: int64(f.sent)}, nil
}

func (f *fakeTransport) Edit(context.Context, domain.MessageRef, string, *domain.Keyboard) error {
	return nil
}

func (f *fakeTransport) EditKeyboard(context.Context, domain.MessageRef, *domain.Keyboard) error {
	return nil
}

func (f *fakeTransport) Delete(context.Context, domain.MessageRef) error {
	return nil
}

type fixture struct {
	server *httptest.Server
	token  string
	items  *sqlite.ItemRepository
	tokens *service.TokenService
	listID int64
}

func newFixture(t *testing.T, limiter middleware.Limiter) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	items := sqlite.NewItemRepository(db)
	pointers := sqlite.NewPointerRepository(db)
	tx := &fakeTransport{}
	notifier := service.NewNotifier(tx, 0)
	listService := service.NewListService(items, pointers, tx, notifier, nil)
	tokenService := service.NewTokenService(sqlite.NewTokenRepository(db))

	cfg := &config.Config{}
	cfg.API.Enabled = true
	cfg.Server.WriteTimeout = 30 * time.Second

	if limiter == nil {
		limiter = middleware.NewLocalLimiter(600, 10)
	}

	router := api.NewRouter(cfg, api.Deps{
		Items:   items,
		List:    listService,
		Tokens:  tokenService,
		DB:      db,
		Limiter: limiter,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	token, err := tokenService.Issue(ctx, 42)
	require.NoError(t, err)

	return &fixture{server: server, token: token, items: items, tokens: tokenService, listID: 42}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestHealthEndpointsArePublic(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, _ = f.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequiresBearerToken(t *testing.T) {
	f := newFixture(t, nil)

	resp, _ := f.do(t, http.MethodGet, "/api/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/list", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RevokedTokenStopsWorking(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	resp, _ := f.do(t, http.MethodGet, "/api/list", f.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	revoked, err := f.tokens.Revoke(ctx, f.listID, f.token)
	require.NoError(t, err)
	require.True(t, revoked)

	resp, _ = f.do(t, http.MethodGet, "/api/list", f.token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_AddListToggleDelete(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, http.MethodPost, "/api/add", f.token, map[string]string{"text": "milk"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := body["data"].(map[string]any)
	assert.Equal(t, "Milk", item["text"])
	id := int64(item["id"].(float64))

	resp, body = f.do(t, http.MethodGet, "/api/list", f.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0].(map[string]any)["done"])

	resp, _ = f.do(t, http.MethodPost, "/api/toggle", f.token, map[string]int64{"id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = f.do(t, http.MethodGet, "/api/list", f.token, nil)
	items = body["data"].(map[string]any)["items"].([]any)
	assert.Equal(t, true, items[0].(map[string]any)["done"])

	resp, _ = f.do(t, http.MethodPost, "/api/delete", f.token, map[string]int64{"id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = f.do(t, http.MethodGet, "/api/list", f.token, nil)
	assert.Empty(t, body["data"].(map[string]any)["items"])
}

func TestAPI_UnknownItemIs404(t *testing.T) {
	f := newFixture(t, nil)

	resp, _ := f.do(t, http.MethodPost, "/api/toggle", f.token, map[string]int64{"id": 9999})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_AddValidatesInput(t *testing.T) {
	f := newFixture(t, nil)

	resp, _ := f.do(t, http.MethodPost, "/api/add", f.token, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Marker-only text cleans down to nothing
	resp, _ = f.do(t, http.MethodPost, "/api/add", f.token, map[string]string{"text": "⬜ "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_NukeClearsList(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.items.Add(ctx, f.listID, "Milk")
	require.NoError(t, err)

	resp, _ := f.do(t, http.MethodPost, "/api/nuke", f.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	left, err := f.items.List(ctx, f.listID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestAPI_RateLimitKicksIn(t *testing.T) {
	f := newFixture(t, middleware.NewLocalLimiter(2, 0))

	for i := 0; i < 2; i++ {
		resp, _ := f.do(t, http.MethodGet, "/api/list", f.token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, _ := f.do(t, http.MethodGet, "/api/list", f.token, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
