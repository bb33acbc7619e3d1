package server

import (
	"defiant-meals-backend/internal/handler"
	appmiddleware "defiant-meals-backend/internal/middleware"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo             *echo.Echo
	authService      service.AuthService
	checkoutHandler  *handler.CheckoutHandler
	webhookHandler   *handler.WebhookHandler
	orderHandler     *handler.OrderHandler
	menuHandler      *handler.MenuHandler
	categoryHandler  *handler.CategoryHandler
	grabAndGoHandler *handler.GrabAndGoHandler
	scheduleHandler  *handler.ScheduleHandler
	authHandler      *handler.AuthHandler
	contactHandler   *handler.ContactHandler
}

type Services struct {
	Auth          service.AuthService
	Checkout      service.CheckoutService
	Webhook       service.WebhookService
	Order         service.OrderService
	Menu          service.MenuService
	Category      service.CategoryService
	GrabAndGo     service.GrabAndGoService
	Schedule      service.ScheduleService
	Notifications service.NotificationService
}

func NewServer(svc *Services) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:             e,
		authService:      svc.Auth,
		checkoutHandler:  handler.NewCheckoutHandler(svc.Checkout),
		webhookHandler:   handler.NewWebhookHandler(svc.Webhook),
		orderHandler:     handler.NewOrderHandler(svc.Order),
		menuHandler:      handler.NewMenuHandler(svc.Menu),
		categoryHandler:  handler.NewCategoryHandler(svc.Category),
		grabAndGoHandler: handler.NewGrabAndGoHandler(svc.GrabAndGo),
		scheduleHandler:  handler.NewScheduleHandler(svc.Schedule),
		authHandler:      handler.NewAuthHandler(svc.Auth),
		contactHandler:   handler.NewContactHandler(svc.Notifications),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	admin := appmiddleware.AdminAuth(s.authService)

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/auth/login", s.authHandler.Login)
	api.POST("/contact", s.contactHandler.Submit)

	// -------- menu / categories --------
	api.GET("/menu", s.menuHandler.List)
	api.GET("/menu/:id", s.menuHandler.Get)
	api.POST("/menu", s.menuHandler.Create, admin)
	api.PUT("/menu/:id", s.menuHandler.Update, admin)
	api.DELETE("/menu/:id", s.menuHandler.Delete, admin)

	api.GET("/categories", s.categoryHandler.List)
	api.POST("/categories", s.categoryHandler.Create, admin)
	api.PUT("/categories/:id", s.categoryHandler.Update, admin)
	api.DELETE("/categories/:id", s.categoryHandler.Delete, admin)

	// -------- checkout --------
	api.POST("/checkout/session", s.checkoutHandler.CreateSession)

	// -------- orders --------
	api.GET("/orders/validate-pickup/:date", s.orderHandler.ValidatePickupDate)
	api.POST("/orders", s.orderHandler.Create)
	api.POST("/orders/admin", s.orderHandler.CreateAdmin, admin)
	api.GET("/orders", s.orderHandler.List, admin)
	api.GET("/orders/:id", s.orderHandler.Get, admin)
	api.PUT("/orders/:id", s.orderHandler.Update, admin)
	api.PUT("/orders/:id/status", s.orderHandler.UpdateStatus, admin)
	api.PATCH("/orders/:id", s.orderHandler.UpdateStatus, admin)
	api.DELETE("/orders/:id", s.orderHandler.Delete, admin)

	// -------- grab and go --------
	api.GET("/grab-and-go/menu", s.menuHandler.ListGrabAndGo)
	api.POST("/grab-and-go/checkout", s.checkoutHandler.CreateGrabAndGoSession)
	api.GET("/grab-and-go/orders", s.grabAndGoHandler.ListOrders, admin)
	api.PUT("/grab-and-go/orders/:id/status", s.grabAndGoHandler.UpdateOrderStatus, admin)

	// -------- schedule --------
	api.GET("/schedule", s.scheduleHandler.GetWeek)
	api.GET("/schedule/slots/:date", s.scheduleHandler.SlotsForDate)
	api.PUT("/schedule/:weekday", s.scheduleHandler.UpdateDay, admin)

	// -------- stripe webhook --------
	// Raw body route: the handler reads bytes itself, nothing may bind first.
	api.POST("/webhooks/stripe", s.webhookHandler.StripeWebhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
