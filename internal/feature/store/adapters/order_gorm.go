// Package adapters はstoreフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogentity "petstore_backend/internal/feature/catalog/domain/entity"
	"petstore_backend/internal/feature/store/domain/entity"
	"petstore_backend/internal/feature/store/usecase"
)

// orderGorm はOrderRepositoryインターフェースのGORM実装です。
// 注文とペットのステータスに跨がる書き込みはすべて単一トランザクションで実行します。
type orderGorm struct {
	db *gorm.DB
}

// orderGormがOrderRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.OrderRepository = (*orderGorm)(nil)

// NewOrderGorm は指定されたgorm.DB接続でorderGormの新しいインスタンスを生成します。
func NewOrderGorm(db *gorm.DB) *orderGorm {
	return &orderGorm{db: db}
}

// PlaceOrder は1トランザクション内で注文を作成し、ペットをpendingにします。
// ペットのステータス遷移は条件付きUPDATE（WHERE id AND status=available）で行い、
// 更新行数0を利用不可として扱います。同一ペットへの並行注文は片方だけが
// 条件に一致するため、二重予約は発生しません。
func (r *orderGorm) PlaceOrder(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&catalogentity.Pet{}).
			Where("id = ? AND status = ?", order.PetID, catalogentity.StatusAvailable).
			Update("status", catalogentity.StatusPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// ペットが存在しないか、既にpending/sold
			return usecase.ErrPetNotAvailable
		}

		return tx.Omit(clause.Associations).Create(order).Error
	})
}

// FindByID は注文を取得します。
func (r *orderGorm) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll は全注文を取得します。
func (r *orderGorm) FindAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus は1トランザクション内で注文ステータスを遷移させます。
// placed -> approved -> delivered 以外の遷移はErrInvalidTransitionで拒否します。
// deliveredへの遷移では注文のcomplete化とペットのsold化を同時にコミットします。
func (r *orderGorm) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrOrderNotFound
			}
			return err
		}

		if !order.Status.CanTransitionTo(status) {
			return usecase.ErrInvalidTransition
		}

		order.Status = status
		if status == entity.StatusDelivered {
			order.Complete = true
			if err := tx.Model(&catalogentity.Pet{}).
				Where("id = ?", order.PetID).
				Update("status", catalogentity.StatusSold).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete は1トランザクション内で注文を削除し、ペットをavailableに戻します。
// 注文の存在確認を先に行うため、存在しない注文IDでペットが巻き戻ることはありません。
func (r *orderGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrOrderNotFound
			}
			return err
		}

		if err := tx.Model(&catalogentity.Pet{}).
			Where("id = ?", order.PetID).
			Update("status", catalogentity.StatusAvailable).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}
