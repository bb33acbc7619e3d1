package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderingLeadDays: customers must order at least 8 days ahead; the deadline
// is midnight at the end of (pickup - 8 days).
const orderingLeadDays = 8

type OrderService interface {
	List(ctx context.Context, pickupDate *time.Time) ([]*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, req *dto.CreateOrderRequest, adminOrder bool) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	ValidatePickupDate(date time.Time) *dto.PickupValidation
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	logger *slog.Logger,
) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// OrderingDeadline returns the last moment a customer may order for the given
// pickup date.
func OrderingDeadline(pickupDate time.Time) time.Time {
	d := pickupDate.AddDate(0, 0, -orderingLeadDays)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}

func (s *orderServiceImpl) ValidatePickupDate(date time.Time) *dto.PickupValidation {
	now := time.Now()
	deadline := OrderingDeadline(date)
	isValid := now.Before(deadline)
	daysUntilPickup := int(date.Sub(now).Hours() / 24)

	var message string
	if isValid {
		message = fmt.Sprintf("Ordering closes at midnight on %s", deadline.Format("January 2, 2006"))
	} else {
		message = fmt.Sprintf("Ordering closed on %s at midnight. Please select a different pickup date.", deadline.Format("January 2, 2006"))
	}

	return &dto.PickupValidation{
		IsValid:         isValid,
		Deadline:        deadline.Format(time.RFC3339),
		DaysUntilPickup: daysUntilPickup,
		Message:         message,
	}
}

func (s *orderServiceImpl) List(ctx context.Context, pickupDate *time.Time) ([]*model.Order, error) {
	return s.orderRepo.List(ctx, pickupDate)
}

func (s *orderServiceImpl) Get(ctx context.Context, id string) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *orderServiceImpl) Create(ctx context.Context, req *dto.CreateOrderRequest, adminOrder bool) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return nil, &ItemUnavailableError{Name: "pickupDate", Reason: "must be YYYY-MM-DD"}
	}

	if !adminOrder {
		deadline := OrderingDeadline(pickupDate)
		if !time.Now().Before(deadline) {
			return nil, &DeadlinePassedError{Deadline: deadline}
		}
	}

	total := decimal.Zero
	items := make([]model.OrderItem, len(req.Items))
	for i, line := range req.Items {
		if line.Quantity < 1 {
			return nil, &ItemUnavailableError{Name: line.Name, Reason: "quantity must be at least 1"}
		}
		unit := lineUnitPrice(&line)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items[i] = model.OrderItem{
			MenuItemID:     line.MenuItemID,
			Name:           line.Name,
			Price:          unit.InexactFloat64(),
			BasePrice:      line.BasePrice,
			Quantity:       line.Quantity,
			SelectedFlavor: line.SelectedFlavor,
			SelectedAddons: line.SelectedAddons,
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "pay_on_pickup"
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		CustomerNotes: req.CustomerNotes,
		TotalAmount:   total.InexactFloat64(),
		PaymentMethod: paymentMethod,
		PickupDate:    pickupDate,
		PickupTime:    req.PickupTime,
		Status:        model.OrderStatusConfirmed,
		IsAdminOrder:  adminOrder,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	s.logger.Info("order created",
		"order_id", order.ID,
		"admin", adminOrder,
		"pickup_date", req.PickupDate,
	)

	return order, nil
}

func (s *orderServiceImpl) Update(ctx context.Context, order *model.Order) error {
	order.UpdatedAt = time.Now()
	return s.orderRepo.Update(ctx, order)
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	st := model.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s.orderRepo.UpdateStatus(ctx, id, st)
}

func (s *orderServiceImpl) Delete(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}
