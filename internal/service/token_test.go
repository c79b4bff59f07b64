package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssue_GeneratesURLSafeToken(t *testing.T) {
	tokens := new(MockTokenRepository)
	svc := NewTokenService(tokens)
	svc.now = func() time.Time { return time.Unix(1000, 0) }
	ctx := context.Background()

	var created string
	tokens.On("Create", ctx, int64(10), mock.AnythingOfType("string"), int64(1000)).
		Run(func(args mock.Arguments) { created = args.String(2) }).
		Return(nil)

	token, err := svc.Issue(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, created, token)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, tokenBytes)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	tokens := new(MockTokenRepository)
	svc := NewTokenService(tokens)
	ctx := context.Background()

	tokens.On("Create", ctx, int64(10), mock.Anything, mock.Anything).Return(nil)

	a, err := svc.Issue(ctx, 10)
	require.NoError(t, err)
	b, err := svc.Issue(ctx, 10)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestResolve_RecordsUse(t *testing.T) {
	tokens := new(MockTokenRepository)
	svc := NewTokenService(tokens)
	svc.now = func() time.Time { return time.Unix(2000, 0) }
	ctx := context.Background()

	tokens.On("Use", ctx, "tok", int64(2000)).Return(int64(42), true, nil)

	listID, ok, err := svc.Resolve(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), listID)
}
