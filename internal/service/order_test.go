package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"
)

func newOrderEnv(t *testing.T) OrderService {
	t.Helper()
	db := newTestDB(t)
	return NewOrderService(db, repository.NewOrderRepository(db), testLogger())
}

func TestOrderingDeadline(t *testing.T) {
	pickup := time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)
	deadline := OrderingDeadline(pickup)

	want := time.Date(2026, time.September, 4, 23, 59, 59, 0, time.UTC)
	if !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}
}

func TestOrderCreateDeadline(t *testing.T) {
	svc := newOrderEnv(t)
	ctx := context.Background()

	baseReq := func(pickup time.Time) *dto.CreateOrderRequest {
		return &dto.CreateOrderRequest{
			CustomerName:  "Jo Smith",
			CustomerEmail: "jo@example.com",
			Items: []dto.CartLine{{
				MenuItemID: "chicken-1", Name: "Grilled Chicken",
				Price: 12, BasePrice: 12, Quantity: 2,
			}},
			PickupDate: pickup.Format("2006-01-02"),
		}
	}

	t.Run("far-out pickup accepted", func(t *testing.T) {
		order, err := svc.Create(ctx, baseReq(time.Now().AddDate(0, 0, 14)), false)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if order.Status != model.OrderStatusConfirmed {
			t.Errorf("status = %q, want confirmed", order.Status)
		}
		if order.TotalAmount != 24.00 {
			t.Errorf("total = %v, want 24.00", order.TotalAmount)
		}
		if order.PaymentMethod != "pay_on_pickup" {
			t.Errorf("payment method = %q", order.PaymentMethod)
		}
	})

	t.Run("past deadline rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, baseReq(time.Now().AddDate(0, 0, 3)), false)
		var deadlineErr *DeadlinePassedError
		if !errors.As(err, &deadlineErr) {
			t.Fatalf("expected DeadlinePassedError, got %v", err)
		}
	})

	t.Run("admin bypasses deadline", func(t *testing.T) {
		order, err := svc.Create(ctx, baseReq(time.Now().AddDate(0, 0, 1)), true)
		if err != nil {
			t.Fatalf("admin create: %v", err)
		}
		if !order.IsAdminOrder {
			t.Error("expected admin order flag")
		}
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		req := baseReq(time.Now().AddDate(0, 0, 14))
		req.Items = nil
		if _, err := svc.Create(ctx, req, false); !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("bad pickup date rejected", func(t *testing.T) {
		req := baseReq(time.Now().AddDate(0, 0, 14))
		req.PickupDate = "09/12/2026"
		if _, err := svc.Create(ctx, req, false); err == nil {
			t.Fatal("expected error for non YYYY-MM-DD date")
		}
	})
}

func TestValidatePickupDate(t *testing.T) {
	svc := newOrderEnv(t)

	valid := svc.ValidatePickupDate(time.Now().AddDate(0, 0, 14))
	if !valid.IsValid {
		t.Errorf("14 days out should be orderable: %+v", valid)
	}

	invalid := svc.ValidatePickupDate(time.Now().AddDate(0, 0, 3))
	if invalid.IsValid {
		t.Errorf("3 days out should be past the deadline: %+v", invalid)
	}
	if invalid.Message == "" || invalid.Deadline == "" {
		t.Errorf("expected explanatory fields: %+v", invalid)
	}
}

func TestOrderUpdateStatusValidation(t *testing.T) {
	svc := newOrderEnv(t)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, "some-id", "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
