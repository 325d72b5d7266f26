package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"xrplbalance/api/config"
	"xrplbalance/api/metrics"
	"xrplbalance/api/middleware"
	"xrplbalance/api/routes"
	"xrplbalance/api/services"
	"xrplbalance/api/types"
)

func Main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file, falling back to environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	if err := Run(cfg, log); err != nil {
		os.Exit(reportFailure(log, err))
	}
	_ = log.Sync()
}

// reportFailure logs err, flushes the logger and returns the exit code.
func reportFailure(log *zap.SugaredLogger, err error) int {
	log.Errorw("server stopped", "error", err)
	_ = log.Sync()
	return 1
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func Run(cfg *types.Config, log *zap.SugaredLogger) error {
	app := New(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("API is up and running",
			"port", cfg.Port,
			"xrpl_data_api", cfg.XRPLDataAPIURL,
			"xrpl_timeout", cfg.XRPLTimeout,
		)
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down", "timeout", cfg.ShutdownTimeout)
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return <-errCh
}

// New builds the fiber app with its middleware and routes.
func New(cfg *types.Config, log *zap.SugaredLogger) *fiber.App {
	m := metrics.New()

	xrplService := services.NewXRPLService(cfg, m, log)
	balanceHandler := routes.NewBalanceHandler(xrplService, log)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	// Outermost, so requests that panic are counted after recover maps them to 500.
	app.Use(middleware.MetricsMiddleware(m))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	routes.InitRoutes(app, balanceHandler, m)

	return app
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := utils.StatusMessage(code)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return ctx.Status(code).JSON(types.ErrorResponse{Error: message})
}
