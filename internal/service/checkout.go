package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"defiant-meals-backend/internal/client"
	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	orderTypeRegular   = "regular"
	orderTypeGrabAndGo = "grab-and-go"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	CreateGrabAndGoSession(ctx context.Context, req *dto.GrabAndGoCheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	stripeClient client.StripeClient
	menuRepo     repository.MenuRepository
	frontendURL  string
	logger       *slog.Logger
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	menuRepo repository.MenuRepository,
	frontendURL string,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient: stripeClient,
		menuRepo:     menuRepo,
		frontendURL:  frontendURL,
		logger:       logger,
	}
}

// lineUnitPrice resolves the charged unit price: base price plus flavor delta
// plus every selected addon.
func lineUnitPrice(line *dto.CartLine) decimal.Decimal {
	price := decimal.NewFromFloat(line.BasePrice)
	if line.BasePrice == 0 {
		price = decimal.NewFromFloat(line.Price)
	}
	if line.SelectedFlavor != nil {
		price = price.Add(decimal.NewFromFloat(line.SelectedFlavor.Price))
	}
	for _, addon := range line.SelectedAddons {
		price = price.Add(decimal.NewFromFloat(addon.Price))
	}
	return price
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// validateCart checks every line against the catalog. The inventory check is
// advisory only: nothing re-checks before the decrement at materialization,
// so two concurrent checkouts can both pass here. Accepted race.
func (s *checkoutServiceImpl) validateCart(ctx context.Context, lines []dto.CartLine, grabAndGoOnly bool) (map[string]*model.MenuItem, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, &ItemUnavailableError{Name: line.Name, Reason: "quantity must be at least 1"}
		}
		ids = append(ids, line.MenuItemID)
	}

	items, err := s.menuRepo.FindMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}

	byID := make(map[string]*model.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, line := range lines {
		item, ok := byID[line.MenuItemID]
		if !ok {
			return nil, &ItemUnavailableError{Name: line.Name, Reason: "menu item not found"}
		}
		if !item.Available {
			return nil, &ItemUnavailableError{Name: item.Name, Reason: "currently unavailable"}
		}
		if grabAndGoOnly && !item.IsGrabAndGo {
			return nil, &ItemUnavailableError{Name: item.Name, Reason: "not available for Grab and Go"}
		}
		if item.IsGrabAndGo && item.Inventory < line.Quantity {
			return nil, &ItemUnavailableError{
				Name:   item.Name,
				Reason: fmt.Sprintf("insufficient inventory, available: %d", item.Inventory),
			}
		}
	}

	return byID, nil
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	catalog, err := s.validateCart(ctx, req.Items, false)
	if err != nil {
		return nil, err
	}

	lineItems := make([]client.SessionLineItem, len(req.Items))
	for i, line := range req.Items {
		item := catalog[line.MenuItemID]
		lineItems[i] = client.SessionLineItem{
			Name:        item.Name,
			Description: item.Description,
			UnitAmount:  toCents(lineUnitPrice(&line)),
			Quantity:    line.Quantity,
		}
	}

	metadata := map[string]string{
		"orderType":           orderTypeRegular,
		"customerName":        req.CustomerName,
		"customerEmail":       req.CustomerEmail,
		"customerPhone":       req.CustomerPhone,
		"pickupDate":          req.PickupDate,
		"pickupTime":          req.PickupTime,
		"specialInstructions": req.SpecialInstructions,
	}
	if err := encodeCartMetadata(req.Items, metadata); err != nil {
		return nil, fmt.Errorf("encode cart metadata: %w", err)
	}

	result, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		LineItems:     lineItems,
		SuccessURL:    s.frontendURL + "/order/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.frontendURL + "/cart",
		CustomerEmail: req.CustomerEmail,
		Metadata:      metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		"session_id", result.SessionID,
		"items", len(req.Items),
	)

	return &dto.CheckoutResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
	}, nil
}

func (s *checkoutServiceImpl) CreateGrabAndGoSession(ctx context.Context, req *dto.GrabAndGoCheckoutRequest) (*dto.CheckoutResponse, error) {
	catalog, err := s.validateCart(ctx, req.Items, true)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	lineItems := make([]client.SessionLineItem, len(req.Items))
	for i, line := range req.Items {
		item := catalog[line.MenuItemID]
		unit := decimal.NewFromFloat(item.Price)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))

		description := item.Description
		if description == "" {
			description = "Grab and Go item"
		}
		lineItems[i] = client.SessionLineItem{
			Name:        item.Name,
			Description: description,
			UnitAmount:  toCents(unit),
			Quantity:    line.Quantity,
		}
	}

	metadata := map[string]string{
		"orderType":     orderTypeGrabAndGo,
		"customerEmail": req.CustomerEmail,
		"totalAmount":   strconv.FormatFloat(total.InexactFloat64(), 'f', 2, 64),
	}
	if err := encodeCartMetadata(req.Items, metadata); err != nil {
		return nil, fmt.Errorf("encode cart metadata: %w", err)
	}

	result, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		LineItems:     lineItems,
		SuccessURL:    s.frontendURL + "/grab-and-go/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.frontendURL + "/grab-and-go",
		CustomerEmail: req.CustomerEmail,
		Metadata:      metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	s.logger.Info("grab and go checkout session created",
		"session_id", result.SessionID,
		"items", len(req.Items),
	)

	return &dto.CheckoutResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
	}, nil
}
