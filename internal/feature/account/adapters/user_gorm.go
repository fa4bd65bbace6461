// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"petstore_backend/internal/feature/account/domain/entity"
	"petstore_backend/internal/feature/account/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// isDuplicateEntry はユニークキー重複エラーかどうかを判定します。
// MySQLエラー1062のほか、テストで使用するSQLiteのUNIQUE制約違反も検出します。
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create はユーザーをネストされた住所とともにデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateEntry(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します（住所を含む）。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Preload("Addresses").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します（住所を含む）。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Preload("Addresses").Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindAll は全ユーザーを取得します。
func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update は非nilフィールドのみを部分更新します。
// 対象行が存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) Update(ctx context.Context, id uint, in usecase.UpdateUserInput) error {
	updates := map[string]any{}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.Age != nil {
		updates["age"] = *in.Age
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Password != nil {
		updates["password"] = *in.Password
	}
	if in.Role != nil {
		updates["role"] = *in.Role
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isDuplicateEntry(res.Error) {
			return usecase.ErrEmailAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// SaveToken は最後に発行したアクセストークンをユーザー行に保存します。
func (r *userGorm) SaveToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("token", token).Error
}

// Delete はユーザーを削除します。住所は外部キー制約によりカスケード削除されます。
// 削除行数が0の場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// AddAddress は住所を追加します。
func (r *userGorm) AddAddress(ctx context.Context, address *entity.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// UpdateAddress はid AND userIdで絞り込んだ部分更新を行います。
// 行が一致しない場合（存在しない、または他ユーザー所有）、usecase.ErrAddressNotFoundを返します。
func (r *userGorm) UpdateAddress(ctx context.Context, id, userID uint, in usecase.UpdateAddressInput) error {
	updates := map[string]any{}
	if in.Unit != nil {
		updates["unit"] = *in.Unit
	}
	if in.Road != nil {
		updates["road"] = *in.Road
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&entity.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrAddressNotFound
	}
	return nil
}

// DeleteAddress はid AND userIdで絞り込んだ削除を行います。
// 削除行数が0の場合、usecase.ErrAddressNotFoundを返します。
func (r *userGorm) DeleteAddress(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrAddressNotFound
	}
	return nil
}
