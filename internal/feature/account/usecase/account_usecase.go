package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"petstore_backend/internal/feature/account/domain/entity"
	"petstore_backend/internal/shared/apperr"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをネストされた住所とともに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスでユーザーを取得します（住所を含む）。
	// 存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDでユーザーを取得します（住所を含む）。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindAll は全ユーザーを取得します。
	FindAll(ctx context.Context) ([]entity.User, error)

	// Update は指定されたフィールドのみを部分更新します。
	// 対象が存在しない場合、ErrUserNotFoundを返します。
	Update(ctx context.Context, id uint, in UpdateUserInput) error

	// SaveToken は最後に発行したアクセストークンを永続化します。
	SaveToken(ctx context.Context, id uint, token string) error

	// Delete はユーザーを削除します（住所はカスケード削除）。
	// 削除行数が0の場合、ErrUserNotFoundを返します。
	Delete(ctx context.Context, id uint) error

	// AddAddress は住所をユーザーに追加します。
	AddAddress(ctx context.Context, address *entity.Address) error

	// UpdateAddress はid AND userIdで絞り込んだ部分更新を行います。
	// 所有権チェックはクエリ述語そのものです（別途の認可チェックはしない）。
	UpdateAddress(ctx context.Context, id, userID uint, in UpdateAddressInput) error

	// DeleteAddress はid AND userIdで絞り込んだ削除を行います。
	DeleteAddress(ctx context.Context, id, userID uint) error
}

// TokenIssuer はアクセス/リフレッシュトークンの発行と検証を抽象化します。
type TokenIssuer interface {
	// GenerateAccessToken は署名済みアクセストークンを生成します。
	GenerateAccessToken(email string) (string, error)
	// GenerateRefreshToken は署名済みリフレッシュトークンを生成します。
	GenerateRefreshToken(email string) (string, error)
	// ParseRefreshToken はリフレッシュトークンを検証し、埋め込まれたメールアドレスを返します。
	ParseRefreshToken(token string) (string, error)
}

// TokenPair はログイン・登録・リフレッシュで発行されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput はユーザー登録の入力です。
type RegisterInput struct {
	FirstName string
	LastName  string
	Age       int
	Phone     string
	Email     string
	Password  string
	Role      string
	Addresses []AddressInput
}

// AddressInput は住所作成の入力です。
type AddressInput struct {
	Unit string
	Road string
	City string
}

// UpdateUserInput は部分更新の入力です。nilのフィールドは変更されません。
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Age       *int
	Phone     *string
	Email     *string
	Password  *string
	Role      *string
}

// UpdateAddressInput は住所の部分更新の入力です。
type UpdateAddressInput struct {
	Unit *string
	Road *string
	City *string
}

// accountUsecase はアカウントのビジネスロジックを実装します。
type accountUsecase struct {
	users    UserRepository
	sessions SessionRepository
	issuer   TokenIssuer
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(users UserRepository, sessions SessionRepository, issuer TokenIssuer) *accountUsecase {
	return &accountUsecase{
		users:    users,
		sessions: sessions,
		issuer:   issuer,
	}
}

// validateRegister は登録入力の必須フィールドとパスワード強度を検証します。
func validateRegister(in RegisterInput) error {
	switch {
	case in.FirstName == "":
		return apperr.New(apperr.Validation, "firstName must be specified")
	case in.LastName == "":
		return apperr.New(apperr.Validation, "lastName must be specified")
	case in.Email == "":
		return apperr.New(apperr.Validation, "email must be specified")
	case in.Phone == "":
		return apperr.New(apperr.Validation, "phone must be specified")
	case len(in.Password) < minPasswordLength:
		return apperr.Newf(apperr.Validation, "password must be at least %d characters long", minPasswordLength)
	}
	for _, a := range in.Addresses {
		if a.Unit == "" || a.Road == "" || a.City == "" {
			return apperr.New(apperr.Validation, "address unit, road and city must be specified")
		}
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// トークンペアを発行してリフレッシュセッションを保存します。
// ロールは常にuserになります（管理者作成はRegisterByAdminを使用）。
func (u *accountUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	in.Role = entity.RoleUser
	return u.register(ctx, in)
}

// RegisterByAdmin は管理者によるユーザー作成です。ロールの指定を許可します。
func (u *accountUsecase) RegisterByAdmin(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	switch in.Role {
	case "":
		in.Role = entity.RoleUser
	case entity.RoleUser, entity.RoleAdmin:
	default:
		return nil, TokenPair{}, apperr.Newf(apperr.Validation, "invalid role: %q", in.Role)
	}
	return u.register(ctx, in)
}

func (u *accountUsecase) register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	if err := validateRegister(in); err != nil {
		return nil, TokenPair{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	addresses := make([]entity.Address, 0, len(in.Addresses))
	for _, a := range in.Addresses {
		addresses = append(addresses, entity.Address{Unit: a.Unit, Road: a.Road, City: a.City})
	}

	user := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Age:       in.Age,
		Phone:     in.Phone,
		Role:      in.Role,
		Email:     in.Email,
		Password:  string(hashed),
		Addresses: addresses,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := u.issueTokens(ctx, user.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// issueTokens はトークンペアを生成し、リフレッシュセッションを上書き保存します。
func (u *accountUsecase) issueTokens(ctx context.Context, email string) (TokenPair, error) {
	access, err := u.issuer.GenerateAccessToken(email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := u.issuer.GenerateRefreshToken(email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := u.sessions.Set(ctx, email, refresh); err != nil {
		return TokenPair{}, fmt.Errorf("failed to store session: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login はユーザーを認証し、新しいトークンペアを発行します。
// セッションと永続化済みトークンフィールドは上書きされます。
func (u *accountUsecase) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	if email == "" || password == "" {
		return nil, TokenPair{}, apperr.New(apperr.Validation, "email and password must be specified")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := u.issueTokens(ctx, user.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if err := u.users.SaveToken(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to persist token: %w", err)
	}
	return user, pair, nil
}

// Refresh はリフレッシュトークンを検証し、保存済みセッションと照合した上で
// 新しいトークンペアを発行してセッションをローテーションします。
// 保存済みトークンと一致しない場合（失効・ローテーション済み）は拒否します。
func (u *accountUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	email, err := u.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	stored, err := u.sessions.Get(ctx, email)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if stored != refreshToken {
		// 提示されたトークンは過去にローテーション済み（盗用の可能性）
		slog.Warn("refresh token mismatch", "email", email)
		return TokenPair{}, ErrInvalidRefreshToken
	}

	return u.issueTokens(ctx, email)
}

// Logout は実行ユーザーのリフレッシュセッションを削除します。
func (u *accountUsecase) Logout(ctx context.Context, email string) error {
	return u.sessions.Del(ctx, email)
}

// UpdateSelf は自身のプロフィールを部分更新します。
// メールアドレスとロールの変更は拒否されます。
func (u *accountUsecase) UpdateSelf(ctx context.Context, userID uint, in UpdateUserInput) error {
	if in.Email != nil {
		return ErrEmailChangeNotAllowed
	}
	if in.Role != nil {
		return apperr.New(apperr.Validation, "cannot change role")
	}
	return u.update(ctx, userID, in)
}

// UpdateByAdmin は任意ユーザーの部分更新です。メールアドレス変更とロール変更を許可します。
func (u *accountUsecase) UpdateByAdmin(ctx context.Context, id uint, in UpdateUserInput) error {
	if in.Role != nil && *in.Role != entity.RoleUser && *in.Role != entity.RoleAdmin {
		return apperr.Newf(apperr.Validation, "invalid role: %q", *in.Role)
	}
	return u.update(ctx, id, in)
}

func (u *accountUsecase) update(ctx context.Context, id uint, in UpdateUserInput) error {
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return apperr.Newf(apperr.Validation, "password must be at least %d characters long", minPasswordLength)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		in.Password = &h
	}
	return u.users.Update(ctx, id, in)
}

// DeleteSelf は自身のアカウントを削除します。セッションも破棄されます。
func (u *accountUsecase) DeleteSelf(ctx context.Context, user *entity.User) error {
	if err := u.sessions.Del(ctx, user.Email); err != nil {
		// セッション破棄の失敗はアカウント削除を妨げない
		slog.Warn("failed to delete session", "email", user.Email, "error", err)
	}
	return u.users.Delete(ctx, user.ID)
}

// DeleteByAdmin は任意ユーザーを削除します。対象のセッションも破棄されます。
func (u *accountUsecase) DeleteByAdmin(ctx context.Context, id uint) error {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.sessions.Del(ctx, user.Email); err != nil {
		slog.Warn("failed to delete session", "email", user.Email, "error", err)
	}
	return u.users.Delete(ctx, id)
}

// GetAll は全ユーザーを取得します。
func (u *accountUsecase) GetAll(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// GetByID はIDでユーザーを取得します。
func (u *accountUsecase) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// AddAddress は実行ユーザーに住所を追加します。
func (u *accountUsecase) AddAddress(ctx context.Context, userID uint, in AddressInput) error {
	if in.Unit == "" || in.Road == "" || in.City == "" {
		return apperr.New(apperr.Validation, "address unit, road and city must be specified")
	}
	return u.users.AddAddress(ctx, &entity.Address{
		Unit:   in.Unit,
		Road:   in.Road,
		City:   in.City,
		UserID: userID,
	})
}

// UpdateAddress は実行ユーザー所有の住所を部分更新します。
// 所有権はクエリ述語（id AND userId）で強制されます。
func (u *accountUsecase) UpdateAddress(ctx context.Context, id, userID uint, in UpdateAddressInput) error {
	return u.users.UpdateAddress(ctx, id, userID, in)
}

// DeleteAddress は実行ユーザー所有の住所を削除します。
func (u *accountUsecase) DeleteAddress(ctx context.Context, id, userID uint) error {
	return u.users.DeleteAddress(ctx, id, userID)
}
