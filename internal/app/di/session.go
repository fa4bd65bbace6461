package di

import (
	"time"

	accountadapters "petstore_backend/internal/feature/account/adapters"
	"petstore_backend/internal/feature/account/usecase"
	"petstore_backend/internal/platform/session"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation with a TTL
// matching the refresh token lifetime. Otherwise, it falls back to MySQL.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB, refreshTTL time.Duration) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session", refreshTTL)
	}
	return accountadapters.NewSessionGorm(db)
}
