package repository

import (
	"context"

	"defiant-meals-backend/internal/model"

	"gorm.io/gorm"
)

type MenuRepository interface {
	List(ctx context.Context, category string) ([]*model.MenuItem, error)
	ListGrabAndGo(ctx context.Context) ([]*model.MenuItem, error)
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	FindMany(ctx context.Context, ids []string) ([]*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id string) error
	// DecrementInventory applies a single atomic UPDATE so concurrent order
	// materializations cannot lose updates. It is unconditional: stock may go
	// negative when the checkout-time pre-check races.
	DecrementInventory(ctx context.Context, tx *gorm.DB, id string, quantity int) error
}

type menuRepoImpl struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepoImpl{
		db: db,
	}
}

func (r *menuRepoImpl) List(ctx context.Context, category string) ([]*model.MenuItem, error) {
	var items []*model.MenuItem
	q := r.db.WithContext(ctx).Order("category, name")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *menuRepoImpl) ListGrabAndGo(ctx context.Context) ([]*model.MenuItem, error) {
	var items []*model.MenuItem
	err := r.db.WithContext(ctx).
		Where("is_grab_and_go = ? AND available = ? AND inventory > 0", true, true).
		Order("category, name").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *menuRepoImpl) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *menuRepoImpl) FindMany(ctx context.Context, ids []string) ([]*model.MenuItem, error) {
	var items []*model.MenuItem
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *menuRepoImpl) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepoImpl) Update(ctx context.Context, item *model.MenuItem) error {
	result := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(item)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *menuRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MenuItem{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *menuRepoImpl) DecrementInventory(ctx context.Context, tx *gorm.DB, id string, quantity int) error {
	return tx.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("id = ?", id).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity)).
		Error
}
