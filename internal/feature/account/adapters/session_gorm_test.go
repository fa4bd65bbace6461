package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore_backend/internal/feature/account/usecase"
)

func TestSessionGorm_SetAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	err := repo.Set(ctx, "user@example.com", "refresh-token-1")
	require.NoError(t, err, "failed to set session")

	token, err := repo.Get(ctx, "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "refresh-token-1", token)
}

func TestSessionGorm_Set_UpsertsExistingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "user@example.com", "old-token"))
	require.NoError(t, repo.Set(ctx, "user@example.com", "new-token"))

	token, err := repo.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token, "rotation should replace the stored token")

	var count int64
	require.NoError(t, db.Model(&SessionModel{}).Where("email = ?", "user@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count, "each user should hold at most one session row")
}

func TestSessionGorm_Get_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	_, err := repo.Get(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Del(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "user@example.com", "refresh-token"))
	require.NoError(t, repo.Del(ctx, "user@example.com"))

	_, err := repo.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Del_MissingRowIsNoError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	err := repo.Del(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
}
