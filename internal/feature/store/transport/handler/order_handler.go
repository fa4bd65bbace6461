// Package handler はstoreフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"petstore_backend/internal/feature/store/domain/entity"
	"petstore_backend/internal/feature/store/transport/http/dto"
	"petstore_backend/internal/feature/store/usecase"
	jwtmw "petstore_backend/internal/platform/jwt"
	"petstore_backend/internal/shared/apperr"
	"petstore_backend/internal/shared/reqbody"
)

// 各エンドポイントのボディallowlistです。
var (
	orderKeys  = []string{"petId", "quantity", "shipDate"}
	statusKeys = []string{"status"}
)

// OrderUsecase は注文操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID uint, in usecase.PlaceOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, id uint) (*entity.Order, error)
	GetAllOrders(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// OrderHandler は注文操作のHTTPリクエストを処理します。
type OrderHandler struct {
	orders OrderUsecase
}

// NewOrderHandler はOrderHandlerの新しいインスタンスを生成します。
func NewOrderHandler(orders OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// respondError はエラー種別をHTTPステータスに変換して返却します。
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("store request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	} else {
		slog.Warn("store request rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
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

// Place は注文作成APIエンドポイントを処理します。
// 対象ペットのpending化と注文作成は同一トランザクションでコミットされます。
func (h *OrderHandler) Place(c *gin.Context) {
	user := jwtmw.UserFromContext(c)

	var req dto.PlaceOrderReq
	if err := reqbody.DecodeStrict(c.Request.Body, orderKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.PlaceOrderInput{
		PetID:    req.PetID,
		Quantity: req.Quantity,
		ShipDate: req.ShipDate,
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("order placed", "order_id", order.ID, "pet_id", order.PetID, "user_id", order.UserID)
	c.JSON(http.StatusCreated, dto.NewOrderRes(order))
}

// Get は注文1件の取得を処理します（管理者専用）。
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderRes(order))
}

// GetAll は全注文の一覧取得を処理します（管理者専用）。
func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResList(orders))
}

// UpdateStatus は注文ステータスの遷移を処理します（管理者専用）。
// deliveredへの遷移で注文のcomplete化とペットのsold化が同時にコミットされます。
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateOrderStatusReq
	if err := reqbody.DecodeStrict(c.Request.Body, statusKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("order status updated", "order_id", order.ID, "status", order.Status)
	c.JSON(http.StatusOK, dto.NewOrderRes(order))
}

// Delete は注文削除を処理します（管理者専用）。
// 削除と同時に対象ペットはavailableに戻ります。
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Delete order successfully"})
}
