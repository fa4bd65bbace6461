// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"petstore_backend/internal/feature/account/domain/entity"
	"petstore_backend/internal/feature/account/transport/http/dto"
	"petstore_backend/internal/feature/account/usecase"
	jwtmw "petstore_backend/internal/platform/jwt"
	"petstore_backend/internal/shared/apperr"
	"petstore_backend/internal/shared/reqbody"
)

// 各エンドポイントのボディallowlistです。allowlist外のキーを含むリクエストは
// 永続化処理に入る前に400で拒否されます。
var (
	userKeys      = []string{"firstName", "lastName", "email", "password", "addresses", "age", "phone"}
	userAdminKeys = append(userKeys, "role")
	// 更新系はaddressesキーを受け付けません。住所は/users/addressesで操作します。
	userUpdateKeys      = []string{"firstName", "lastName", "email", "password", "age", "phone"}
	userAdminUpdateKeys = append(userUpdateKeys, "role")
	addressKeys         = []string{"unit", "road", "city"}
	loginKeys           = []string{"email", "password"}
	refreshKeys         = []string{"refreshToken"}
)

// AccountUsecase はアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, usecase.TokenPair, error)
	RegisterByAdmin(ctx context.Context, in usecase.RegisterInput) (*entity.User, usecase.TokenPair, error)
	Login(ctx context.Context, email, password string) (*entity.User, usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (usecase.TokenPair, error)
	Logout(ctx context.Context, email string) error
	UpdateSelf(ctx context.Context, userID uint, in usecase.UpdateUserInput) error
	UpdateByAdmin(ctx context.Context, id uint, in usecase.UpdateUserInput) error
	DeleteSelf(ctx context.Context, user *entity.User) error
	DeleteByAdmin(ctx context.Context, id uint) error
	GetAll(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	AddAddress(ctx context.Context, userID uint, in usecase.AddressInput) error
	UpdateAddress(ctx context.Context, id, userID uint, in usecase.UpdateAddressInput) error
	DeleteAddress(ctx context.Context, id, userID uint) error
}

// UserHandler はアカウント操作のHTTPリクエストを処理します。
type UserHandler struct {
	account AccountUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(account AccountUsecase) *UserHandler {
	return &UserHandler{account: account}
}

// respondError はエラー種別をHTTPステータスに変換して返却します。
// 内部エラーの詳細はログにのみ出力し、レスポンスには公開しません。
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("account request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	} else {
		slog.Warn("account request rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.MessageRes{Message: apperr.Public(err)})
}

// parseIDParam は:idパスパラメータを数値IDに変換します。
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Newf(apperr.Validation, "invalid id: %q", c.Param("id"))
	}
	return uint(id), nil
}

func registerInputFrom(req dto.RegisterReq) usecase.RegisterInput {
	addresses := make([]usecase.AddressInput, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		addresses = append(addresses, usecase.AddressInput{Unit: a.Unit, Road: a.Road, City: a.City})
	}
	return usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Addresses: addresses,
	}
}

// Register はユーザー登録APIエンドポイントを処理します。
// 成功時はトークンペア付きのユーザーを201で返却します。
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := reqbody.DecodeStrict(c.Request.Body, userKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	user, pair, err := h.account.Register(c.Request.Context(), registerInputFrom(req))
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		UserRes:      dto.NewUserRes(user),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// RegisterByAdmin は管理者によるユーザー作成を処理します。roleキーを許可します。
func (h *UserHandler) RegisterByAdmin(c *gin.Context) {
	var req dto.RegisterReq
	if err := reqbody.DecodeStrict(c.Request.Body, userAdminKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	user, pair, err := h.account.RegisterByAdmin(c.Request.Context(), registerInputFrom(req))
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("user registered by admin", "email", user.Email, "role", user.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		UserRes:      dto.NewUserRes(user),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login はログインAPIエンドポイントを処理します。
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := reqbody.DecodeStrict(c.Request.Body, loginKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	user, pair, err := h.account.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		respondError(c, err)
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		UserRes:      dto.NewUserRes(user),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh はリフレッシュトークンの検証とローテーションを処理します。
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := reqbody.DecodeStrict(c.Request.Body, refreshKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.account.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshRes{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// GetMe は実行ユーザー自身のプロフィールを返却します。
func (h *UserHandler) GetMe(c *gin.Context) {
	user := jwtmw.UserFromContext(c)
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateMe は実行ユーザー自身の部分更新を処理します。
// メールアドレスの変更は拒否されます（roleキーはallowlist外）。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := jwtmw.UserFromContext(c)

	var req dto.UpdateUserReq
	if err := reqbody.DecodeStrict(c.Request.Body, userUpdateKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	}
	if err := h.account.UpdateSelf(c.Request.Context(), user.ID, in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "User updated successfully"})
}

// Logout は実行ユーザーのリフレッシュセッションを破棄します。
func (h *UserHandler) Logout(c *gin.Context) {
	user := jwtmw.UserFromContext(c)
	if err := h.account.Logout(c.Request.Context(), user.Email); err != nil {
		respondError(c, err)
		return
	}

	slog.Info("user logout", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "User logout successfully"})
}

// DeleteMe は実行ユーザー自身のアカウント削除を処理します。
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := jwtmw.UserFromContext(c)
	if err := h.account.DeleteSelf(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "User deleted successfully"})
}

// AddAddress は実行ユーザーへの住所追加を処理します。
func (h *UserHandler) AddAddress(c *gin.Context) {
	user := jwtmw.UserFromContext(c)

	var req dto.AddressReq
	if err := reqbody.DecodeStrict(c.Request.Body, addressKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.AddressInput{Unit: req.Unit, Road: req.Road, City: req.City}
	if err := h.account.AddAddress(c.Request.Context(), user.ID, in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Add address successfully"})
}

// UpdateAddress は実行ユーザー所有の住所の部分更新を処理します。
// 所有権はクエリ述語（id AND userId）で強制されます。
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	user := jwtmw.UserFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateAddressReq
	if err := reqbody.DecodeStrict(c.Request.Body, addressKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.UpdateAddressInput{Unit: req.Unit, Road: req.Road, City: req.City}
	if err := h.account.UpdateAddress(c.Request.Context(), id, user.ID, in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Update address successfully"})
}

// DeleteAddress は実行ユーザー所有の住所の削除を処理します。
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	user := jwtmw.UserFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.account.DeleteAddress(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Delete address successfully"})
}

// GetAll は全ユーザーの一覧を返却します（管理者専用）。
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.account.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResList(users))
}

// GetByID は任意ユーザーのプロフィールを返却します（管理者専用）。
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.account.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateByID は任意ユーザーの部分更新を処理します（管理者専用）。
func (h *UserHandler) UpdateByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateUserReq
	if err := reqbody.DecodeStrict(c.Request.Body, userAdminUpdateKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	}
	if err := h.account.UpdateByAdmin(c.Request.Context(), id, in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "User updated successfully"})
}

// DeleteByID は任意ユーザーの削除を処理します（管理者専用）。
func (h *UserHandler) DeleteByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.account.DeleteByAdmin(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Delete user successfully"})
}
