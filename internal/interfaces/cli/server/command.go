package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	checkoutUC "github.com/parapente-jp/flightpass/internal/application/checkout/usecases"
	ticketUC "github.com/parapente-jp/flightpass/internal/application/ticket/usecases"
	"github.com/parapente-jp/flightpass/internal/infrastructure/closures"
	"github.com/parapente-jp/flightpass/internal/infrastructure/config"
	stripeinfra "github.com/parapente-jp/flightpass/internal/infrastructure/payment"
	"github.com/parapente-jp/flightpass/internal/infrastructure/store"
	httpRouter "github.com/parapente-jp/flightpass/internal/interfaces/http"
	"github.com/parapente-jp/flightpass/internal/interfaces/http/handlers"
	"github.com/parapente-jp/flightpass/internal/monitoring"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the flightpass HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"store_backend", cfg.Store.Backend,
		"payments_enabled", cfg.Stripe.Enabled,
	)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	recordStore, err := store.New(&cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	gateway := stripeinfra.NewStripeGateway(&cfg.Stripe)
	closureStore := closures.NewStore(cfg.Closures.Path)
	monitor := monitoring.NewMonitor()
	log := logger.NewLogger()

	ticketHandler := handlers.NewTicketHandler(
		ticketUC.NewIssueTicketUseCase(recordStore, gateway, monitor, log),
		ticketUC.NewGetTicketUseCase(recordStore, log),
		ticketUC.NewGetTicketBySessionUseCase(recordStore, log),
		ticketUC.NewCheckTicketUseCase(recordStore, monitor, log),
		ticketUC.NewConsumeTicketUseCase(recordStore, monitor, log),
		ticketUC.NewListTicketsUseCase(recordStore, log),
	)

	checkoutHandler := handlers.NewCheckoutHandler(
		checkoutUC.NewCreateCheckoutUseCase(gateway, cfg.Stripe.Enabled, log),
		checkoutUC.NewCreateCartCheckoutUseCase(gateway, cfg.Stripe.Enabled, log),
		cfg.Server.BaseURL,
	)

	webhookHandler := handlers.NewWebhookHandler(
		ticketUC.NewIssueTicketUseCase(recordStore, gateway, monitor, log),
		cfg.Stripe.WebhookSecret,
	)

	closureHandler := handlers.NewClosureHandler(closureStore)

	router := httpRouter.NewRouter(cfg, ticketHandler, checkoutHandler, webhookHandler, closureHandler, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
