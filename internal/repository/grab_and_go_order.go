package repository

import (
	"context"
	"time"

	"defiant-meals-backend/internal/model"

	"gorm.io/gorm"
)

type GrabAndGoOrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.GrabAndGoOrder) error
	List(ctx context.Context) ([]*model.GrabAndGoOrder, error)
	ExistsByStripeSessionID(ctx context.Context, sessionID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status model.GrabAndGoStatus) (*model.GrabAndGoOrder, error)
}

type grabAndGoOrderRepoImpl struct {
	db *gorm.DB
}

func NewGrabAndGoOrderRepository(db *gorm.DB) GrabAndGoOrderRepository {
	return &grabAndGoOrderRepoImpl{
		db: db,
	}
}

func (r *grabAndGoOrderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.GrabAndGoOrder) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *grabAndGoOrderRepoImpl) List(ctx context.Context) ([]*model.GrabAndGoOrder, error) {
	var orders []*model.GrabAndGoOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *grabAndGoOrderRepoImpl) ExistsByStripeSessionID(ctx context.Context, sessionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GrabAndGoOrder{}).
		Where("stripe_session_id = ?", sessionID).
		Count(&count).Error

	return count > 0, err
}

func (r *grabAndGoOrderRepoImpl) UpdateStatus(ctx context.Context, id string, status model.GrabAndGoStatus) (*model.GrabAndGoOrder, error) {
	var order model.GrabAndGoOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.GrabAndGoOrder{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Preload("Items").Where("id = ?", id).First(&order).Error
	})

	return &order, err
}
