package usecase

import (
	"context"
	"time"

	"petstore_backend/internal/feature/store/domain/entity"
	"petstore_backend/internal/shared/apperr"
)

// OrderRepository は注文エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// 注文とペットのステータスを同時に変更する操作は、実装側で単一トランザクション
// として実行されます。
type OrderRepository interface {
	// PlaceOrder は1トランザクション内で、対象ペットのステータスを
	// available -> pending に条件付き更新（行レベルのcompare-and-swap）し、
	// 注文行を作成します。ペットが存在しないか利用不可の場合、
	// ErrPetNotAvailableを返して何も書き込みません。
	PlaceOrder(ctx context.Context, order *entity.Order) error

	// FindByID は注文を取得します。存在しない場合、ErrOrderNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// FindAll は全注文を取得します。
	FindAll(ctx context.Context) ([]entity.Order, error)

	// UpdateStatus は1トランザクション内で注文ステータスを遷移させます。
	// deliveredへの遷移では complete=true とペットの sold 化も同時に行います。
	// 遷移グラフに反する場合、ErrInvalidTransitionを返します。
	UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error)

	// Delete は1トランザクション内で、注文の存在を確認してから対象ペットを
	// availableに戻し、注文行を削除します。注文が存在しない場合は
	// ErrOrderNotFoundを返し、ペットには一切触れません。
	Delete(ctx context.Context, id uint) error
}

// PlaceOrderInput は注文作成の入力です。
type PlaceOrderInput struct {
	PetID    uint
	Quantity int
	ShipDate time.Time
}

// orderUsecase は注文のビジネスロジックを実装します。
type orderUsecase struct {
	orders OrderRepository
}

// NewOrderUsecase はorderUsecaseの新しいインスタンスを生成します。
func NewOrderUsecase(orders OrderRepository) *orderUsecase {
	return &orderUsecase{orders: orders}
}

// PlaceOrder は入力を検証し、実行ユーザーの注文を作成します。
// 新規注文は常に status=placed, complete=false で始まります。
func (u *orderUsecase) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*entity.Order, error) {
	if in.PetID == 0 {
		return nil, apperr.New(apperr.Validation, "petId must be specified")
	}
	if in.Quantity < 1 {
		return nil, apperr.New(apperr.Validation, "quantity must be at least 1")
	}
	if in.ShipDate.IsZero() {
		return nil, apperr.New(apperr.Validation, "shipDate must be specified")
	}

	order := &entity.Order{
		UserID:   userID,
		PetID:    in.PetID,
		Quantity: in.Quantity,
		ShipDate: in.ShipDate,
		Status:   entity.StatusPlaced,
		Complete: false,
	}
	if err := u.orders.PlaceOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder はIDで注文を取得します。
func (u *orderUsecase) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	return u.orders.FindByID(ctx, id)
}

// GetAllOrders は全注文を取得します。
func (u *orderUsecase) GetAllOrders(ctx context.Context) ([]entity.Order, error) {
	return u.orders.FindAll(ctx)
}

// UpdateStatus はステータス値を検証し、注文を遷移させます。
func (u *orderUsecase) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Order, error) {
	s := entity.OrderStatus(status)
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, id, s)
}

// DeleteOrder は注文を削除し、対象ペットをavailableに戻します。
func (u *orderUsecase) DeleteOrder(ctx context.Context, id uint) error {
	return u.orders.Delete(ctx, id)
}
