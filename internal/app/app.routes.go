package app

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/timeshard-api/internal/handlers"
	"github.com/joshuarp/timeshard-api/internal/middlewares"
	sharedratelimit "github.com/joshuarp/timeshard-api/internal/shared/ratelimit"
	shareduid "github.com/joshuarp/timeshard-api/internal/shared/uid"
	"go.uber.org/fx"
)

type routerGroupsOut struct {
	fx.Out
	Public fiber.Router `name:"api_public"`
}

func provideRouterGroups(
	app *fiber.App,
	logger *slog.Logger,
	uidGenerator shareduid.UIDGenerator,
) routerGroupsOut {
	app.Use(middlewares.NewHTTPRecoveryMiddleware())
	app.Use(middlewares.NewHTTPRequestIDMiddleware(requestIDGenerator(uidGenerator, logger)))
	app.Use(middlewares.NewHTTPCORSMiddleware())
	app.Use(middlewares.NewHTTPRequestResponseLogMiddleware(logger))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	return routerGroupsOut{
		Public: api,
	}
}

// requestIDGenerator adapts the uid facade to the request-id middleware,
// so requests are tagged with the service's own ids.
func requestIDGenerator(generator shareduid.UIDGenerator, logger *slog.Logger) func() string {
	return func() string {
		id, err := generator.Generate(context.Background())
		if err != nil {
			logger.Warn("request id generation failed", "error", err)
			return ""
		}
		return id
	}
}

type mintRoutesIn struct {
	fx.In
	Public        fiber.Router              `name:"api_public"`
	RateLimiter   sharedratelimit.Limiter   `name:"mint_rate_limiter"`
	Logger        *slog.Logger
	MintHandler   *handlers.MintIDHandler
	ParseHandler  *handlers.ParseIDHandler
	LayoutHandler *handlers.DescribeLayoutHandler
}

func registerMintRoutes(in mintRoutesIn) {
	rateLimitMiddleware := middlewares.NewHTTPRateLimitMiddleware(middlewares.RateLimitConfig{
		Limiter:      in.RateLimiter,
		Logger:       in.Logger,
		KeyExtractor: middlewares.PerIPKeyExtractor("mint"),
	})

	// Only minting is rate limited; parse and layout are read-only.
	in.MintHandler.Register(in.Public.Group("", rateLimitMiddleware))
	in.ParseHandler.Register(in.Public)
	in.LayoutHandler.Register(in.Public)
}
