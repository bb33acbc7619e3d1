package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"defiant-meals-backend/internal/client"
	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	eventCheckoutCompleted   = "checkout.session.completed"
	eventAsyncPaymentSuccess = "checkout.session.async_payment_succeeded"
	eventAsyncPaymentFailure = "checkout.session.async_payment_failed"
)

// WebhookService processes Stripe events. Delivery is at-least-once and
// unordered, so everything downstream of signature verification must be safe
// to replay. A non-nil error means signature verification failed; all other
// failures are logged and acknowledged so the provider stops retrying a
// permanently-failing payload.
type WebhookService interface {
	HandleWebhook(ctx context.Context, sigHeader string, body []byte) error
}

type webhookServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	orderRepo        repository.OrderRepository
	grabAndGoRepo    repository.GrabAndGoOrderRepository
	menuRepo         repository.MenuRepository
	webhookEventRepo repository.WebhookEventRepository
	notifications    NotificationService
	logger           *slog.Logger
}

func NewWebhookService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	orderRepo repository.OrderRepository,
	grabAndGoRepo repository.GrabAndGoOrderRepository,
	menuRepo repository.MenuRepository,
	webhookEventRepo repository.WebhookEventRepository,
	notifications NotificationService,
	logger *slog.Logger,
) WebhookService {
	return &webhookServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		orderRepo:        orderRepo,
		grabAndGoRepo:    grabAndGoRepo,
		menuRepo:         menuRepo,
		webhookEventRepo: webhookEventRepo,
		notifications:    notifications,
		logger:           logger,
	}
}

func (s *webhookServiceImpl) HandleWebhook(ctx context.Context, sigHeader string, body []byte) error {
	if err := s.stripeClient.VerifyWebhookSignature(body, sigHeader); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	var event model.StripeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.Error("decode webhook payload", "error", err)
		return nil
	}

	switch event.Type {
	case eventCheckoutCompleted:
		s.handleSessionCompleted(ctx, &event)
	case eventAsyncPaymentSuccess:
		s.logger.Info("async payment succeeded", "event_id", event.ID)
	case eventAsyncPaymentFailure:
		s.logger.Warn("async payment failed", "event_id", event.ID)
	default:
		s.logger.Debug("unhandled event type", "type", event.Type, "event_id", event.ID)
	}

	return nil
}

func (s *webhookServiceImpl) handleSessionCompleted(ctx context.Context, event *model.StripeEvent) {
	// Cheap replay short-circuit. The unique index on stripe_session_id is
	// the real duplicate guard.
	if seen, err := s.webhookEventRepo.Exists(ctx, event.ID); err == nil && seen {
		s.logger.Info("webhook event already processed", "event_id", event.ID)
		return
	}

	session := &event.Data.Object
	s.logger.Info("payment completed",
		"session_id", session.ID,
		"order_type", session.Metadata["orderType"],
	)

	var err error
	if session.Metadata["orderType"] == orderTypeGrabAndGo {
		err = s.materializeGrabAndGoOrder(ctx, session)
	} else {
		err = s.materializeOrder(ctx, session)
	}
	if err != nil {
		// Acknowledged anyway; needs external monitoring to be noticed.
		s.logger.Error("order materialization failed",
			"session_id", session.ID,
			"error", err,
		)
		return
	}

	if err := s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type); err != nil {
		s.logger.Warn("mark webhook event processed", "event_id", event.ID, "error", err)
	}
}

// parsePickupDate accepts the metadata date formats the storefront sends.
// Anything else falls back to now; the order still materializes.
func parsePickupDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Now(), false
}

func (s *webhookServiceImpl) materializeOrder(ctx context.Context, session *model.StripeCheckoutSession) error {
	exists, err := s.orderRepo.ExistsByStripeSessionID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("check existing order: %w", err)
	}
	if exists {
		s.logger.Info("order already exists for session, skipping", "session_id", session.ID)
		return nil
	}

	metadata := session.Metadata
	lines, err := decodeCartMetadata(metadata)
	if err != nil {
		s.logger.Warn("cart metadata unreadable, creating order with no items",
			"session_id", session.ID,
			"error", err,
		)
		lines = nil
	}

	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderItem{
			MenuItemID:     line.MenuItemID,
			Name:           line.Name,
			Price:          line.Price,
			BasePrice:      line.BasePrice,
			Quantity:       line.Quantity,
			SelectedFlavor: line.SelectedFlavor,
			SelectedAddons: line.SelectedAddons,
		}
	}

	pickupDate, parsed := parsePickupDate(metadata["pickupDate"])
	if !parsed {
		s.logger.Warn("pickup date missing or unparseable, defaulting to today",
			"session_id", session.ID,
			"raw", metadata["pickupDate"],
		)
	}

	customerName := session.CustomerDetails.Name
	if customerName == "" {
		customerName = metadata["customerName"]
	}
	if customerName == "" {
		customerName = "Guest"
	}
	customerEmail := session.CustomerDetails.Email
	if customerEmail == "" {
		customerEmail = metadata["customerEmail"]
	}

	order := &model.Order{
		ID:                    uuid.NewString(),
		CustomerName:          customerName,
		CustomerEmail:         customerEmail,
		CustomerPhone:         metadata["customerPhone"],
		Items:                 items,
		CustomerNotes:         metadata["specialInstructions"],
		TotalAmount:           decimal.NewFromInt(session.AmountTotal).Div(decimal.NewFromInt(100)).InexactFloat64(),
		PaymentMethod:         "card",
		PickupDate:            pickupDate,
		PickupTime:            metadata["pickupTime"],
		Status:                model.OrderStatusNew,
		StripeSessionID:       &session.ID,
		StripePaymentIntentID: session.PaymentIntentID,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		return s.adjustInventory(ctx, tx, lines)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Info("duplicate order insert suppressed", "session_id", session.ID)
			return nil
		}
		return err
	}

	s.logger.Info("order created", "order_id", order.ID, "session_id", session.ID)

	s.notifications.SendOrderConfirmation(ctx, order)
	s.notifications.SendAdminOrderAlert(ctx, order)

	return nil
}

func (s *webhookServiceImpl) materializeGrabAndGoOrder(ctx context.Context, session *model.StripeCheckoutSession) error {
	exists, err := s.grabAndGoRepo.ExistsByStripeSessionID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("check existing grab and go order: %w", err)
	}
	if exists {
		s.logger.Info("grab and go order already exists for session, skipping", "session_id", session.ID)
		return nil
	}

	lines, err := decodeCartMetadata(session.Metadata)
	if err != nil {
		s.logger.Warn("grab and go cart metadata unreadable",
			"session_id", session.ID,
			"error", err,
		)
		lines = nil
	}

	items := make([]model.GrabAndGoOrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.GrabAndGoOrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
		}
	}

	customerEmail := session.CustomerDetails.Email
	if customerEmail == "" {
		customerEmail = session.Metadata["customerEmail"]
	}

	order := &model.GrabAndGoOrder{
		ID:                    uuid.NewString(),
		CustomerName:          session.CustomerDetails.Name,
		CustomerEmail:         customerEmail,
		Items:                 items,
		TotalAmount:           decimal.NewFromInt(session.AmountTotal).Div(decimal.NewFromInt(100)).InexactFloat64(),
		Status:                model.GrabAndGoStatusPaid,
		StripeSessionID:       session.ID,
		StripePaymentIntentID: session.PaymentIntentID,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.grabAndGoRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store grab and go order: %w", err)
		}
		return s.adjustInventory(ctx, tx, lines)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Info("duplicate grab and go order insert suppressed", "session_id", session.ID)
			return nil
		}
		return err
	}

	s.logger.Info("grab and go order created", "order_id", order.ID, "session_id", session.ID)

	s.notifications.SendAdminGrabAndGoAlert(ctx, order)

	return nil
}

// adjustInventory decrements stock for every inventory-tracked line. Each
// decrement is one atomic UPDATE; no floor is enforced, so stock can go
// negative when checkouts race over the last units.
func (s *webhookServiceImpl) adjustInventory(ctx context.Context, tx *gorm.DB, lines []dto.CartLine) error {
	if len(lines) == 0 {
		return nil
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.MenuItemID
	}
	menuItems, err := s.menuRepo.FindMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("load menu items for inventory adjustment: %w", err)
	}
	tracked := make(map[string]bool, len(menuItems))
	for _, item := range menuItems {
		tracked[item.ID] = item.IsGrabAndGo
	}

	for _, line := range lines {
		if !tracked[line.MenuItemID] {
			continue
		}
		if err := s.menuRepo.DecrementInventory(ctx, tx, line.MenuItemID, line.Quantity); err != nil {
			return fmt.Errorf("decrement inventory for %s: %w", line.MenuItemID, err)
		}
		s.logger.Info("inventory decremented",
			"menu_item_id", line.MenuItemID,
			"quantity", line.Quantity,
		)
	}

	return nil
}
