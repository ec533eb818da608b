package server

import (
	"context"
	"errors"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	authconstant "github.com/AnthoniusHendriyanto/clinic-service/pkg/constant"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	healthTimeout   = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Mount registers a group of routes under the API prefix.
type Mount func(api fiber.Router)

// New builds the fiber app with the shared middleware stack, /healthz, and
// every mounted route group under /api/v1.
func New(cfg *config.Config, log *zap.Logger, db Pinger, mounts ...Mount) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "clinic-service",
		ErrorHandler: response.ErrorHandler(cfg.IsProduction(), log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/healthz", health(db))

	api := app.Group(authconstant.APIPrefix)
	for _, mount := range mounts {
		mount(api)
	}

	return app
}

func health(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
		}
		return response.OK(c, fiber.Map{"status": "ok", "database": "up"})
	}
}

// RequestLogger writes one line per request. Errors are rendered here so the
// logged status matches what the client receives. Request strings are copied
// out of fasthttp's buffers, which are reused after the handler returns.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", utils.CopyString(c.GetRespHeader(fiber.HeaderXRequestID))),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}

// Run serves until ctx is cancelled and then shuts the app down gracefully.
func Run(ctx context.Context, app *fiber.App, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
