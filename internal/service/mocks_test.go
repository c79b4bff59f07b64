package service

import (
	"context"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository mocks the ItemRepository interface
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Add(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	args := m.Called(ctx, listID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) AddMany(ctx context.Context, listID int64, texts []string) (int64, error) {
	args := m.Called(ctx, listID, texts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, listID int64) ([]domain.Item, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) Toggle(ctx context.Context, listID, id int64) (int64, error) {
	args := m.Called(ctx, listID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, listID, id int64) (int64, error) {
	args := m.Called(ctx, listID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) DeleteMany(ctx context.Context, listID int64, ids []int64) (int64, error) {
	args := m.Called(ctx, listID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) DeleteDone(ctx context.Context, listID int64) (int64, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) DeleteAll(ctx context.Context, listID int64) (int64, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPointerRepository mocks the PointerRepository interface
type MockPointerRepository struct {
	mock.Mock
}

func (m *MockPointerRepository) Get(ctx context.Context, listID int64) (*domain.MessageRef, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageRef), args.Error(1)
}

func (m *MockPointerRepository) Set(ctx context.Context, listID int64, ref domain.MessageRef) error {
	args := m.Called(ctx, listID, ref)
	return args.Error(0)
}

func (m *MockPointerRepository) Clear(ctx context.Context, listID int64) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, userID int64) (*domain.DeleteSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeleteSession), args.Error(1)
}

func (m *MockSessionRepository) Put(ctx context.Context, session *domain.DeleteSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateSelection(ctx context.Context, userID int64, selected map[int64]struct{}) error {
	args := m.Called(ctx, userID, selected)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTokenRepository mocks the TokenRepository interface
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, listID int64, token string, issuedAt int64) error {
	args := m.Called(ctx, listID, token, issuedAt)
	return args.Error(0)
}

func (m *MockTokenRepository) ListByList(ctx context.Context, listID int64) ([]domain.APIToken, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}

func (m *MockTokenRepository) Revoke(ctx context.Context, listID int64, token string, revokedAt int64) (bool, error) {
	args := m.Called(ctx, listID, token, revokedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) Use(ctx context.Context, token string, usedAt int64) (int64, bool, error) {
	args := m.Called(ctx, token, usedAt)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// MockTransport mocks the transport.Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) (domain.MessageRef, error) {
	args := m.Called(ctx, chatID, text, kb)
	return args.Get(0).(domain.MessageRef), args.Error(1)
}

func (m *MockTransport) Edit(ctx context.Context, ref domain.MessageRef, text string, kb *domain.Keyboard) error {
	args := m.Called(ctx, ref, text, kb)
	return args.Error(0)
}

func (m *MockTransport) EditKeyboard(ctx context.Context, ref domain.MessageRef, kb *domain.Keyboard) error {
	args := m.Called(ctx, ref, kb)
	return args.Error(0)
}

func (m *MockTransport) Delete(ctx context.Context, ref domain.MessageRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
