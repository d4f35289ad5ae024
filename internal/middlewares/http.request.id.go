package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

const ChainIDHeader = "X-Request-ID"

// NewHTTPRequestIDMiddleware tags every request with an id. When
// generate is non-nil it supplies the ids, letting the service issue its
// own request ids; otherwise fiber's default UUID generator is used.
func NewHTTPRequestIDMiddleware(generate func() string) fiber.Handler {
	cfg := requestid.Config{
		Header: ChainIDHeader,
	}
	if generate != nil {
		cfg.Generator = generate
	}
	return requestid.New(cfg)
}

func ChainIDFromContext(c fiber.Ctx) string {
	chainID := requestid.FromContext(c)
	if chainID != "" {
		return chainID
	}

	return c.Get(ChainIDHeader)
}
