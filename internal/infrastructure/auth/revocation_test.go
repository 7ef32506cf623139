package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocations_Token(t *testing.T) {
	r := auth.NewMemoryRevocations()
	ctx := context.Background()

	require.NoError(t, r.RevokeToken(ctx, "jti-logout", time.Hour))

	revoked, err := r.TokenRevoked(ctx, "jti-logout")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.TokenRevoked(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevocations_TokenExpires(t *testing.T) {
	r := auth.NewMemoryRevocations()
	ctx := context.Background()

	require.NoError(t, r.RevokeToken(ctx, "jti-short", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	revoked, err := r.TokenRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)

	t.Run("already expired tokens are not stored", func(t *testing.T) {
		require.NoError(t, r.RevokeToken(ctx, "jti-dead", 0))
		revoked, err := r.TokenRevoked(ctx, "jti-dead")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestMemoryRevocations_User(t *testing.T) {
	r := auth.NewMemoryRevocations()
	ctx := context.Background()
	issued := time.Now().Add(-time.Hour)

	before, err := r.IssuedBeforeRevocation(ctx, "user-1", issued)
	require.NoError(t, err)
	assert.False(t, before)

	require.NoError(t, r.RevokeUser(ctx, "user-1", 7*24*time.Hour))

	before, err = r.IssuedBeforeRevocation(ctx, "user-1", issued)
	require.NoError(t, err)
	assert.True(t, before)

	t.Run("tokens issued afterwards pass", func(t *testing.T) {
		before, err := r.IssuedBeforeRevocation(ctx, "user-1", time.Now().Add(2*time.Second))
		require.NoError(t, err)
		assert.False(t, before)
	})

	t.Run("other users pass", func(t *testing.T) {
		before, err := r.IssuedBeforeRevocation(ctx, "user-2", issued)
		require.NoError(t, err)
		assert.False(t, before)
	})
}

func TestMemoryRevocations_Concurrent(t *testing.T) {
	r := auth.NewMemoryRevocations()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			jti := fmt.Sprintf("jti-%d", i)
			_ = r.RevokeToken(ctx, jti, time.Hour)
			_, _ = r.TokenRevoked(ctx, jti)
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	for i := 0; i < 20; i++ {
		revoked, err := r.TokenRevoked(ctx, fmt.Sprintf("jti-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}
