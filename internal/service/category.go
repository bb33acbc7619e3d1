package service

import (
	"context"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	List(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryServiceImpl) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, category *model.Category) error {
	return s.categoryRepo.Update(ctx, category)
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}
