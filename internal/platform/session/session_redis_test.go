package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore_backend/internal/feature/account/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Hour)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_SetAndGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Hour)
	ctx := context.Background()

	err := repo.Set(ctx, "user@example.com", "refresh-token-1")
	require.NoError(t, err, "failed to set session")

	token, err := repo.Get(ctx, "user@example.com")
	assert.NoError(t, err, "failed to get session")
	assert.Equal(t, "refresh-token-1", token)

	// Keys carry the prefix so different stores can share one Redis
	assert.True(t, mr.Exists("session:user@example.com"), "expected prefixed key")
}

func TestSessionRedis_Set_OverwritesPrevious(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "user@example.com", "old-token"))
	require.NoError(t, repo.Set(ctx, "user@example.com", "new-token"))

	token, err := repo.Get(ctx, "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "new-token", token, "rotation should replace the stored token")
}

func TestSessionRedis_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Hour)

	_, err := repo.Get(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Get_Expired(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "user@example.com", "refresh-token"))

	// Advance past the TTL
	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "expired session should be gone")
}

func TestSessionRedis_Del(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "user@example.com", "refresh-token"))
	require.NoError(t, repo.Del(ctx, "user@example.com"))

	_, err := repo.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Del_MissingKeyIsNoError(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session", time.Hour)

	err := repo.Del(context.Background(), "nobody@example.com")

	assert.NoError(t, err, "deleting a missing session should not fail")
}
