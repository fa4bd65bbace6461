package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"petstore_backend/internal/feature/account/domain/entity"
	"petstore_backend/internal/feature/account/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError is required so unique-constraint violations surface as
// gorm.ErrDuplicatedKey like the MySQL driver does.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	// SQLite does not enforce foreign keys unless told to
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(&entity.User{}, &entity.Address{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func newTestUser(email string) *entity.User {
	return &entity.User{
		FirstName: "Taro",
		LastName:  "Yamada",
		Age:       30,
		Phone:     "090-0000-0000",
		Role:      entity.RoleUser,
		Email:     email,
		Password:  "hashed_password",
	}
}

func TestNewUserGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation with nested addresses", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := newTestUser("test@example.com")
		user.Addresses = []entity.Address{
			{Unit: "101", Road: "Main St", City: "Tokyo"},
			{Unit: "202", Road: "Second St", City: "Osaka"},
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")

		found, err := repo.FindByEmail(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.Len(t, found.Addresses, 2, "nested addresses should be persisted")
		for _, a := range found.Addresses {
			assert.Equal(t, user.ID, a.UserID, "address should belong to the created user")
		}
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		require.NoError(t, repo.Create(context.Background(), newTestUser("dup@example.com")))

		err := repo.Create(context.Background(), newTestUser("dup@example.com"))

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		expected := newTestUser("find@example.com")
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByEmail(context.Background(), "find@example.com")

		assert.NoError(t, err, "failed to find user")
		assert.Equal(t, expected.ID, found.ID)
		assert.Equal(t, expected.Email, found.Email)
		assert.Equal(t, expected.Password, found.Password)
	})

	t.Run("email not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("find user by id successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		expected := newTestUser("byid@example.com")
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err)
		assert.Equal(t, expected.Email, found.Email)
	})

	t.Run("id not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		_, err := repo.FindByID(context.Background(), 9999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)

	require.NoError(t, repo.Create(context.Background(), newTestUser("a@example.com")))
	require.NoError(t, repo.Create(context.Background(), newTestUser("b@example.com")))

	users, err := repo.FindAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserGorm_Update(t *testing.T) {
	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := newTestUser("update@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		newName := "Hanako"
		err := repo.Update(context.Background(), user.ID, usecase.UpdateUserInput{FirstName: &newName})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hanako", found.FirstName)
		assert.Equal(t, "Yamada", found.LastName, "unspecified fields should not change")
		assert.Equal(t, "update@example.com", found.Email)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := newTestUser("noop@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		err := repo.Update(context.Background(), user.ID, usecase.UpdateUserInput{})

		assert.NoError(t, err)
	})

	t.Run("user not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		newName := "Nobody"
		err := repo.Update(context.Background(), 9999, usecase.UpdateUserInput{FirstName: &newName})

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_SaveToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)

	user := newTestUser("token@example.com")
	require.NoError(t, repo.Create(context.Background(), user))

	err := repo.SaveToken(context.Background(), user.ID, "issued-access-token")
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "issued-access-token", found.Token)
}

func TestUserGorm_Delete(t *testing.T) {
	t.Run("delete cascades to addresses", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := newTestUser("delete@example.com")
		user.Addresses = []entity.Address{{Unit: "101", Road: "Main St", City: "Tokyo"}}
		require.NoError(t, repo.Create(context.Background(), user))

		err := repo.Delete(context.Background(), user.ID)
		require.NoError(t, err)

		_, err = repo.FindByID(context.Background(), user.ID)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)

		var count int64
		require.NoError(t, db.Model(&entity.Address{}).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Zero(t, count, "addresses should be cascade deleted")
	})

	t.Run("user not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		err := repo.Delete(context.Background(), 9999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_Addresses(t *testing.T) {
	t.Run("add address", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := newTestUser("addr@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		addr := &entity.Address{Unit: "101", Road: "Main St", City: "Tokyo", UserID: user.ID}
		err := repo.AddAddress(context.Background(), addr)

		assert.NoError(t, err)
		assert.NotZero(t, addr.ID)
	})

	t.Run("update address scoped to owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		owner := newTestUser("owner@example.com")
		require.NoError(t, repo.Create(context.Background(), owner))
		other := newTestUser("other@example.com")
		require.NoError(t, repo.Create(context.Background(), other))

		addr := &entity.Address{Unit: "101", Road: "Main St", City: "Tokyo", UserID: owner.ID}
		require.NoError(t, repo.AddAddress(context.Background(), addr))

		newCity := "Kyoto"

		// 他ユーザーの住所は述語で弾かれ、NotFound扱いになる
		err := repo.UpdateAddress(context.Background(), addr.ID, other.ID, usecase.UpdateAddressInput{City: &newCity})
		assert.ErrorIs(t, err, usecase.ErrAddressNotFound)

		err = repo.UpdateAddress(context.Background(), addr.ID, owner.ID, usecase.UpdateAddressInput{City: &newCity})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), owner.ID)
		require.NoError(t, err)
		require.Len(t, found.Addresses, 1)
		assert.Equal(t, "Kyoto", found.Addresses[0].City)
		assert.Equal(t, "Main St", found.Addresses[0].Road, "unspecified fields should not change")
	})

	t.Run("delete address scoped to owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		owner := newTestUser("owner2@example.com")
		require.NoError(t, repo.Create(context.Background(), owner))
		other := newTestUser("other2@example.com")
		require.NoError(t, repo.Create(context.Background(), other))

		addr := &entity.Address{Unit: "101", Road: "Main St", City: "Tokyo", UserID: owner.ID}
		require.NoError(t, repo.AddAddress(context.Background(), addr))

		err := repo.DeleteAddress(context.Background(), addr.ID, other.ID)
		assert.ErrorIs(t, err, usecase.ErrAddressNotFound)

		err = repo.DeleteAddress(context.Background(), addr.ID, owner.ID)
		assert.NoError(t, err)

		found, err := repo.FindByID(context.Background(), owner.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Addresses)
	})
}
