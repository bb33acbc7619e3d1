package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"defiant-meals-backend/internal/client"
	"defiant-meals-backend/internal/config"
	"defiant-meals-backend/internal/logger"
	"defiant-meals-backend/internal/repository"
	"defiant-meals-backend/internal/server"
	"defiant-meals-backend/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db := client.InitSqliteClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	resendClient := client.NewResendClient(&cfg.Resend)

	menuRepo := repository.NewMenuRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	grabAndGoRepo := repository.NewGrabAndGoOrderRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	notifications := service.NewNotificationService(resendClient, cfg.Resend.AdminEmail, log)

	svc := &server.Services{
		Auth:     service.NewAuthService(&cfg.Auth),
		Checkout: service.NewCheckoutService(stripeClient, menuRepo, cfg.FrontendURL, log),
		Webhook: service.NewWebhookService(
			db, stripeClient,
			orderRepo, grabAndGoRepo, menuRepo, webhookEventRepo,
			notifications, log,
		),
		Order:         service.NewOrderService(db, orderRepo, log),
		Menu:          service.NewMenuService(menuRepo),
		Category:      service.NewCategoryService(categoryRepo),
		GrabAndGo:     service.NewGrabAndGoService(grabAndGoRepo),
		Schedule:      service.NewScheduleService(scheduleRepo),
		Notifications: notifications,
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(svc)

	log.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
