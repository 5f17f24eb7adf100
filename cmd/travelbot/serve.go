package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/config"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationapi"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().IntP("port", "p", 0, "Listen port (default: $SERVER_PORT)")
	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	logx.Info("🚀 Starting TravelBot API Server...")
	logx.Infof("Environment: %s", cfg.Environment)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	container := NewContainer(ctx, cfg)
	defer container.Cleanup()
	container.StartBackgroundServices(ctx)

	app := newApp(container)
	return startServer(app, cfg, cancel)
}

func newApp(container *Container) *fiber.App {
	cfg := container.Config
	app := fiber.New(fiber.Config{
		AppName:               "TravelBot API",
		DisableStartupMessage: true,
		ErrorHandler:          conversationapi.ErrorHandler(cfg.IsDevelopment()),
		BodyLimit:             cfg.Server.BodyLimit,
		IdleTimeout:           120 * time.Second,
	})

	setupMiddleware(app, cfg)

	app.Get("/health", healthCheckHandler())
	app.Get("/", infoHandler(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(container.Metrics.Handler()))

	container.Handlers.RegisterRoutes(app, container.AuthMiddleware)
	logx.Info("✓ Conversation routes registered")

	app.Use(conversationapi.NotFound)
	return app
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDevelopment(),
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return "req-" + uuid.NewString()
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.Server.CORSOrigins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, DELETE, OPTIONS",
		ExposeHeaders: "X-Request-ID, Content-Disposition",
	}))

	logFormat := "${time} | ${status} | ${latency} | ${method} ${path}"
	if cfg.IsDevelopment() {
		logFormat += " | ${ip} | ${reqHeader:X-Request-ID}\n"
	} else {
		logFormat += "\n"
	}
	app.Use(logger.New(logger.Config{
		Format:     logFormat,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

func healthCheckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		})
	}
}

func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     "TravelBot API",
			"version":     version,
			"environment": cfg.Environment,
			"endpoints": fiber.Map{
				"chat":          "POST /api/chat",
				"conversations": "GET /api/conversations",
				"conversation":  "GET|DELETE /api/conversations/:id",
				"tts":           "POST /api/tts",
				"export":        "POST /api/export",
				"stats":         "GET /api/stats",
				"health":        "GET /health",
				"metrics":       "GET /metrics",
			},
			"auth_required": cfg.Auth.Enabled(),
		})
	}
}

// startServer listens until SIGINT or SIGTERM, then drains for up to 30s.
func startServer(app *fiber.App, cfg *config.Config, cancel context.CancelFunc) error {
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)

	go func() {
		logx.Info(strings.Repeat("=", 71))
		logx.Infof("🚀 Server listening on %s", addr)
		logx.Infof("💚 Health Check: http://localhost%s/health", addr)
		logx.Info(strings.Repeat("=", 71))
		errCh <- app.Listen(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		cancel()
		return err
	case sig := <-sigChan:
		logx.Infof("🛑 Received signal: %v", sig)
	}

	logx.Info("Shutting down gracefully...")
	cancel()
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
		return err
	}
	logx.Info("✅ Server exited successfully")
	return nil
}
