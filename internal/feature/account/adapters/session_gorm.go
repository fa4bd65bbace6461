package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"petstore_backend/internal/feature/account/usecase"
)

// SessionModel is the GORM model for the sessions table.
// It is the relational fallback for the Redis-backed session store and holds
// one row per user email with the currently valid refresh token.
type SessionModel struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	RefreshToken string    `gorm:"size:512;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// sessionGorm is a relational implementation of the SessionRepository interface.
type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionRepository.
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a new instance of sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Set stores the refresh token for the given email, replacing any existing row.
func (r *sessionGorm) Set(ctx context.Context, email, refreshToken string) error {
	model := SessionModel{Email: email, RefreshToken: refreshToken}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"refresh_token", "updated_at"}),
	}).Create(&model).Error
}

// Get returns the stored refresh token for the given email.
func (r *sessionGorm) Get(ctx context.Context, email string) (string, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrSessionNotFound
		}
		return "", err
	}
	return model.RefreshToken, nil
}

// Del removes the session row for the given email. Deleting a missing
// session is not an error.
func (r *sessionGorm) Del(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&SessionModel{}).Error
}
