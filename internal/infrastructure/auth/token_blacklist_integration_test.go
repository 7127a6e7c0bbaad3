//go:build integration

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/auth"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisTokenBlacklist(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	client := testutil.StartRedis(t)
	blacklist := auth.NewRedisTokenBlacklist(client)
	ctx := context.Background()

	t.Run("revoked jti", func(t *testing.T) {
		revoked, err := blacklist.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Minute))

		revoked, err = blacklist.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl, err := client.TTL(ctx, "pricing:token:blacklist:jti:jti-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("user revocation covers earlier tokens only", func(t *testing.T) {
		issuedBefore := time.Now().Add(-time.Minute)
		require.NoError(t, blacklist.RevokeUser(ctx, "user-1", time.Hour))

		revoked, err := blacklist.IsUserRevoked(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = blacklist.IsUserRevoked(ctx, "user-1", time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, revoked)

		revoked, err = blacklist.IsUserRevoked(ctx, "user-2", issuedBefore)
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
