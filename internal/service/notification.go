package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"defiant-meals-backend/internal/client"
	"defiant-meals-backend/internal/model"
)

// NotificationService sends order emails. Every send failure is logged and
// swallowed: a lost email must never roll back a paid order or bubble up to
// the webhook response.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *model.Order)
	SendAdminOrderAlert(ctx context.Context, order *model.Order)
	SendAdminGrabAndGoAlert(ctx context.Context, order *model.GrabAndGoOrder)
	SendContactMessage(ctx context.Context, name, email, message string) error
}

type notificationServiceImpl struct {
	resendClient client.ResendClient
	adminEmail   string
	logger       *slog.Logger
}

func NewNotificationService(
	resendClient client.ResendClient,
	adminEmail string,
	logger *slog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		resendClient: resendClient,
		adminEmail:   adminEmail,
		logger:       logger,
	}
}

func shortOrderRef(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func orderItemsText(items []model.OrderItem) string {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%dx %s - $%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	return sb.String()
}

func (s *notificationServiceImpl) SendOrderConfirmation(ctx context.Context, order *model.Order) {
	if order.CustomerEmail == "" {
		s.logger.Warn("no customer email on order, skipping confirmation", "order_id", order.ID)
		return
	}

	subject := fmt.Sprintf("Order Confirmation #%s", shortOrderRef(order.ID))
	html := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h1>Order Confirmed!</h1>
		<h2>Order #%s</h2>
		<p><strong>Customer:</strong> %s</p>
		<p><strong>Pickup Date:</strong> %s</p>
		<p><strong>Pickup Time:</strong> %s</p>
		<h3>Your Items:</h3>
		<pre>%s</pre>
		<p style="text-align: right;"><strong>Total: $%.2f</strong></p>
		<p>We'll have your fresh meals ready for pickup at the scheduled time.</p>
	</div>`,
		shortOrderRef(order.ID),
		order.CustomerName,
		order.PickupDate.Format("January 2, 2006"),
		order.PickupTime,
		orderItemsText(order.Items),
		order.TotalAmount,
	)

	if err := s.resendClient.Send(ctx, []string{order.CustomerEmail}, subject, html); err != nil {
		s.logger.Error("send order confirmation failed",
			"order_id", order.ID,
			"error", err,
		)
		return
	}

	s.logger.Info("order confirmation sent", "order_id", order.ID, "to", order.CustomerEmail)
}

func (s *notificationServiceImpl) SendAdminOrderAlert(ctx context.Context, order *model.Order) {
	if s.adminEmail == "" {
		return
	}

	subject := fmt.Sprintf("New Order #%s - %s", shortOrderRef(order.ID), order.CustomerName)
	html := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h1>New Order Received</h1>
		<p><strong>Customer:</strong> %s (%s, %s)</p>
		<p><strong>Pickup:</strong> %s at %s</p>
		<h3>Items:</h3>
		<pre>%s</pre>
		<p><strong>Total: $%.2f</strong></p>
		<p><strong>Notes:</strong> %s</p>
	</div>`,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.PickupDate.Format("January 2, 2006"),
		order.PickupTime,
		orderItemsText(order.Items),
		order.TotalAmount,
		order.CustomerNotes,
	)

	if err := s.resendClient.Send(ctx, []string{s.adminEmail}, subject, html); err != nil {
		s.logger.Error("send admin order alert failed",
			"order_id", order.ID,
			"error", err,
		)
		return
	}

	s.logger.Info("admin order alert sent", "order_id", order.ID)
}

func (s *notificationServiceImpl) SendAdminGrabAndGoAlert(ctx context.Context, order *model.GrabAndGoOrder) {
	if s.adminEmail == "" {
		return
	}

	var sb strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "%dx %s - $%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}

	subject := fmt.Sprintf("New Grab and Go Order #%s", shortOrderRef(order.ID))
	html := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h1>New Grab and Go Order</h1>
		<p><strong>Customer:</strong> %s</p>
		<h3>Items:</h3>
		<pre>%s</pre>
		<p><strong>Total: $%.2f</strong></p>
	</div>`,
		order.CustomerEmail,
		sb.String(),
		order.TotalAmount,
	)

	if err := s.resendClient.Send(ctx, []string{s.adminEmail}, subject, html); err != nil {
		s.logger.Error("send admin grab and go alert failed",
			"order_id", order.ID,
			"error", err,
		)
		return
	}

	s.logger.Info("admin grab and go alert sent", "order_id", order.ID)
}

func (s *notificationServiceImpl) SendContactMessage(ctx context.Context, name, email, message string) error {
	if s.adminEmail == "" {
		return fmt.Errorf("no admin email configured")
	}

	subject := fmt.Sprintf("Contact form message from %s", name)
	html := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2>Contact Form Message</h2>
		<p><strong>From:</strong> %s (%s)</p>
		<p>%s</p>
	</div>`, name, email, message)

	if err := s.resendClient.Send(ctx, []string{s.adminEmail}, subject, html); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}

	return nil
}
