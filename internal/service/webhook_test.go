package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"defiant-meals-backend/internal/client"
	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.MenuItem{},
		&model.Category{},
		&model.Order{},
		&model.OrderItem{},
		&model.GrabAndGoOrder{},
		&model.GrabAndGoOrderItem{},
		&model.ScheduleDay{},
		&model.WebhookEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStripeClient struct {
	verifyErr  error
	lastParams *client.CheckoutSessionParams
	createErr  error
}

func (f *fakeStripeClient) CreateCheckoutSession(ctx context.Context, params *client.CheckoutSessionParams) (*client.CheckoutSessionResult, error) {
	f.lastParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &client.CheckoutSessionResult{
		SessionID: "cs_test_123",
		URL:       "https://checkout.stripe.com/pay/cs_test_123",
	}, nil
}

func (f *fakeStripeClient) VerifyWebhookSignature(payload []byte, sigHeader string) error {
	return f.verifyErr
}

type sentEmail struct {
	to      []string
	subject string
}

type fakeResendClient struct {
	sendErr error
	sent    []sentEmail
}

func (f *fakeResendClient) Send(ctx context.Context, to []string, subject, html string) error {
	f.sent = append(f.sent, sentEmail{to: to, subject: subject})
	return f.sendErr
}

type webhookEnv struct {
	db            *gorm.DB
	svc           WebhookService
	stripe        *fakeStripeClient
	resend        *fakeResendClient
	orderRepo     repository.OrderRepository
	grabAndGoRepo repository.GrabAndGoOrderRepository
	menuRepo      repository.MenuRepository
}

func newWebhookEnv(t *testing.T) *webhookEnv {
	t.Helper()

	db := newTestDB(t)
	stripe := &fakeStripeClient{}
	resend := &fakeResendClient{}
	log := testLogger()

	orderRepo := repository.NewOrderRepository(db)
	grabAndGoRepo := repository.NewGrabAndGoOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	notifications := NewNotificationService(resend, "admin@defiantmeals.com", log)

	svc := NewWebhookService(
		db, stripe,
		orderRepo, grabAndGoRepo, menuRepo, webhookEventRepo,
		notifications, log,
	)

	return &webhookEnv{
		db:            db,
		svc:           svc,
		stripe:        stripe,
		resend:        resend,
		orderRepo:     orderRepo,
		grabAndGoRepo: grabAndGoRepo,
		menuRepo:      menuRepo,
	}
}

func completedEventBody(t *testing.T, eventID string, session model.StripeCheckoutSession) []byte {
	t.Helper()

	body, err := json.Marshal(model.StripeEvent{
		ID:   eventID,
		Type: "checkout.session.completed",
		Data: model.StripeEventData{Object: session},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return body
}

func nextSaturday() time.Time {
	d := time.Now()
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func grilledChickenSession(t *testing.T) model.StripeCheckoutSession {
	t.Helper()

	lines := []dto.CartLine{{
		MenuItemID: "chicken-1",
		Name:       "Grilled Chicken",
		Price:      12.00,
		BasePrice:  12.00,
		Quantity:   2,
	}}

	metadata := map[string]string{
		"orderType":  "regular",
		"pickupDate": nextSaturday().Format("2006-01-02"),
		"pickupTime": "12:00-12:30",
	}
	if err := encodeCartMetadata(lines, metadata); err != nil {
		t.Fatalf("encode cart: %v", err)
	}
	if metadata[cartDataCountKey] != "1" {
		t.Fatalf("expected a single metadata chunk, got %s", metadata[cartDataCountKey])
	}

	return model.StripeCheckoutSession{
		ID:              "cs_live_1",
		AmountTotal:     2400,
		Currency:        "usd",
		PaymentIntentID: "pi_1",
		PaymentStatus:   "paid",
		CustomerDetails: model.StripeCustomerDetails{
			Name:  "Jo Smith",
			Email: "jo@example.com",
		},
		Metadata: metadata,
	}
}

func (e *webhookEnv) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return count
}

func TestWebhookMaterializesOrder(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()

	body := completedEventBody(t, "evt_1", grilledChickenSession(t))
	if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	orders, err := env.orderRepo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	order := orders[0]
	if order.TotalAmount != 24.00 {
		t.Errorf("total = %v, want 24.00", order.TotalAmount)
	}
	if order.Status != model.OrderStatusNew {
		t.Errorf("status = %q, want new", order.Status)
	}
	if order.PaymentMethod != "card" {
		t.Errorf("payment method = %q, want card", order.PaymentMethod)
	}
	if order.StripeSessionID == nil || *order.StripeSessionID != "cs_live_1" || order.StripePaymentIntentID != "pi_1" {
		t.Errorf("stripe ids not recorded: %v %q", order.StripeSessionID, order.StripePaymentIntentID)
	}
	if order.CustomerName != "Jo Smith" || order.CustomerEmail != "jo@example.com" {
		t.Errorf("customer fields not taken from session: %q %q", order.CustomerName, order.CustomerEmail)
	}
	if order.PickupTime != "12:00-12:30" {
		t.Errorf("pickup time = %q", order.PickupTime)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].Price != 12.00 {
		t.Errorf("unexpected items: %+v", order.Items)
	}

	// customer confirmation + admin alert
	if len(env.resend.sent) != 2 {
		t.Errorf("expected 2 emails, got %d", len(env.resend.sent))
	}
}

func TestWebhookIdempotentReplay(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()
	session := grilledChickenSession(t)

	// Same event redelivered, and the same session under a fresh event id:
	// both must be no-ops after the first materialization.
	deliveries := [][]byte{
		completedEventBody(t, "evt_1", session),
		completedEventBody(t, "evt_1", session),
		completedEventBody(t, "evt_2", session),
	}
	for i, body := range deliveries {
		if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
			t.Fatalf("delivery %d: %v", i, err)
		}
	}

	if count := env.orderCount(t); count != 1 {
		t.Fatalf("expected exactly 1 order after replays, got %d", count)
	}
}

func TestWebhookRejectsForgedSignature(t *testing.T) {
	env := newWebhookEnv(t)
	env.stripe.verifyErr = errors.New("no matching v1 signature")
	ctx := context.Background()

	body := completedEventBody(t, "evt_1", grilledChickenSession(t))
	if err := env.svc.HandleWebhook(ctx, "bad-sig", body); err == nil {
		t.Fatal("expected signature error")
	}

	if count := env.orderCount(t); count != 0 {
		t.Fatalf("forged event must not create orders, got %d", count)
	}
}

func TestWebhookPickupDateFallback(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()

	session := grilledChickenSession(t)
	session.Metadata["pickupDate"] = "next saturday ish"

	body := completedEventBody(t, "evt_1", session)
	if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	orders, err := env.orderRepo.List(ctx, nil)
	if err != nil || len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d (err %v)", len(orders), err)
	}
	if time.Since(orders[0].PickupDate) > time.Minute {
		t.Errorf("expected pickup date defaulted to now, got %v", orders[0].PickupDate)
	}
}

func TestWebhookUnreadableCartStillCreatesOrder(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()

	session := grilledChickenSession(t)
	session.Metadata["cartData_0"] = "{{{ definitely not json"

	body := completedEventBody(t, "evt_1", session)
	if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	orders, err := env.orderRepo.List(ctx, nil)
	if err != nil || len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d (err %v)", len(orders), err)
	}
	if len(orders[0].Items) != 0 {
		t.Errorf("expected empty items after parse failure, got %d", len(orders[0].Items))
	}
}

func TestWebhookNotificationFailureDoesNotRollBack(t *testing.T) {
	env := newWebhookEnv(t)
	env.resend.sendErr = errors.New("resend is down")
	ctx := context.Background()

	body := completedEventBody(t, "evt_1", grilledChickenSession(t))
	if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	if count := env.orderCount(t); count != 1 {
		t.Fatalf("order must survive notification failure, got %d orders", count)
	}
	// Both sends attempted despite the first failing.
	if len(env.resend.sent) != 2 {
		t.Errorf("expected both notification attempts, got %d", len(env.resend.sent))
	}
}

func TestWebhookRegularOrderDecrementsTrackedItems(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()

	tracked := &model.MenuItem{
		ID: "gg-snack", Name: "Snack Pack", Price: 4, Available: true,
		IsGrabAndGo: true, Inventory: 10,
	}
	untracked := &model.MenuItem{
		ID: "meal-1", Name: "Meal Prep Bowl", Price: 12, Available: true,
	}
	for _, item := range []*model.MenuItem{tracked, untracked} {
		if err := env.menuRepo.Create(ctx, item); err != nil {
			t.Fatalf("create %s: %v", item.ID, err)
		}
	}

	lines := []dto.CartLine{
		{MenuItemID: "gg-snack", Name: "Snack Pack", Price: 4, BasePrice: 4, Quantity: 3},
		{MenuItemID: "meal-1", Name: "Meal Prep Bowl", Price: 12, BasePrice: 12, Quantity: 1},
	}
	metadata := map[string]string{"orderType": "regular", "pickupDate": nextSaturday().Format("2006-01-02")}
	if err := encodeCartMetadata(lines, metadata); err != nil {
		t.Fatalf("encode cart: %v", err)
	}

	session := model.StripeCheckoutSession{
		ID:          "cs_live_2",
		AmountTotal: 2400,
		Metadata:    metadata,
	}
	if err := env.svc.HandleWebhook(ctx, "sig", completedEventBody(t, "evt_1", session)); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	got, err := env.menuRepo.FindByID(ctx, "gg-snack")
	if err != nil {
		t.Fatalf("find tracked: %v", err)
	}
	if got.Inventory != 7 {
		t.Errorf("tracked inventory = %d, want 7", got.Inventory)
	}
}

func TestWebhookGrabAndGoOrder(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()

	item := &model.MenuItem{
		ID: "gg-1", Name: "Overnight Oats", Price: 6.50, Available: true,
		IsGrabAndGo: true, Inventory: 5,
	}
	if err := env.menuRepo.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	lines := []dto.CartLine{
		{MenuItemID: "gg-1", Name: "Overnight Oats", Price: 6.50, Quantity: 2},
	}
	metadata := map[string]string{
		"orderType":     "grab-and-go",
		"customerEmail": "pat@example.com",
		"totalAmount":   "13.00",
	}
	if err := encodeCartMetadata(lines, metadata); err != nil {
		t.Fatalf("encode cart: %v", err)
	}

	session := model.StripeCheckoutSession{
		ID:              "cs_gg_1",
		AmountTotal:     1300,
		PaymentIntentID: "pi_gg_1",
		Metadata:        metadata,
	}
	body := completedEventBody(t, "evt_gg_1", session)

	if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}
	// Replay under a new event id.
	if err := env.svc.HandleWebhook(ctx, "sig", completedEventBody(t, "evt_gg_2", session)); err != nil {
		t.Fatalf("replay: %v", err)
	}

	orders, err := env.grabAndGoRepo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 grab and go order, got %d", len(orders))
	}
	order := orders[0]
	if order.Status != model.GrabAndGoStatusPaid {
		t.Errorf("status = %q, want paid", order.Status)
	}
	if order.TotalAmount != 13.00 {
		t.Errorf("total = %v, want 13.00", order.TotalAmount)
	}
	if order.CustomerEmail != "pat@example.com" {
		t.Errorf("customer email = %q", order.CustomerEmail)
	}

	got, err := env.menuRepo.FindByID(ctx, "gg-1")
	if err != nil {
		t.Fatalf("find item: %v", err)
	}
	if got.Inventory != 3 {
		t.Errorf("inventory = %d, want 3 (decremented once despite replay)", got.Inventory)
	}

	// Admin alert only for grab and go.
	if len(env.resend.sent) != 1 {
		t.Errorf("expected 1 admin alert, got %d emails", len(env.resend.sent))
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	env := newWebhookEnv(t)
	ctx := context.Background()

	body, _ := json.Marshal(model.StripeEvent{
		ID:   "evt_async",
		Type: "checkout.session.async_payment_failed",
	})
	if err := env.svc.HandleWebhook(ctx, "sig", body); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}
	if count := env.orderCount(t); count != 0 {
		t.Fatalf("expected no orders, got %d", count)
	}
}
