package service

import (
	"context"
	"fmt"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"
)

type GrabAndGoService interface {
	ListOrders(ctx context.Context) ([]*model.GrabAndGoOrder, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*model.GrabAndGoOrder, error)
}

type grabAndGoServiceImpl struct {
	grabAndGoRepo repository.GrabAndGoOrderRepository
}

func NewGrabAndGoService(grabAndGoRepo repository.GrabAndGoOrderRepository) GrabAndGoService {
	return &grabAndGoServiceImpl{
		grabAndGoRepo: grabAndGoRepo,
	}
}

func (s *grabAndGoServiceImpl) ListOrders(ctx context.Context) ([]*model.GrabAndGoOrder, error) {
	return s.grabAndGoRepo.List(ctx)
}

func (s *grabAndGoServiceImpl) UpdateOrderStatus(ctx context.Context, id, status string) (*model.GrabAndGoOrder, error) {
	st := model.GrabAndGoStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s.grabAndGoRepo.UpdateStatus(ctx, id, st)
}
