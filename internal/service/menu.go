package service

import (
	"context"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"github.com/google/uuid"
)

type MenuService interface {
	List(ctx context.Context, category string) ([]*model.MenuItem, error)
	ListGrabAndGo(ctx context.Context) ([]*model.MenuItem, error)
	Get(ctx context.Context, id string) (*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id string) error
}

type menuServiceImpl struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuServiceImpl{
		menuRepo: menuRepo,
	}
}

func (s *menuServiceImpl) List(ctx context.Context, category string) ([]*model.MenuItem, error) {
	return s.menuRepo.List(ctx, category)
}

func (s *menuServiceImpl) ListGrabAndGo(ctx context.Context) ([]*model.MenuItem, error) {
	return s.menuRepo.ListGrabAndGo(ctx)
}

func (s *menuServiceImpl) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	return s.menuRepo.FindByID(ctx, id)
}

func (s *menuServiceImpl) Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuServiceImpl) Update(ctx context.Context, item *model.MenuItem) error {
	return s.menuRepo.Update(ctx, item)
}

func (s *menuServiceImpl) Delete(ctx context.Context, id string) error {
	return s.menuRepo.Delete(ctx, id)
}
