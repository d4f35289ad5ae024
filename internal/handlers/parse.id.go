package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/timeshard-api/internal/domain/vo"
)

type IDParseService interface {
	Parse(ctx context.Context, raw string) (vo.ParsedID, error)
}

type ParseIDHandler struct {
	service IDParseService
	logger  *slog.Logger
}

func NewParseIDHandler(service IDParseService, logger *slog.Logger) *ParseIDHandler {
	return &ParseIDHandler{service: service, logger: logger}
}

func (h *ParseIDHandler) Register(router fiber.Router) {
	router.Get("/ids/:id", h.Handle)
}

func (h *ParseIDHandler) Handle(c fiber.Ctx) error {
	parsed, err := h.service.Parse(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, vo.ErrNotDecimal) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "id must be a non-negative decimal integer",
			})
		}

		h.logger.Error("failed to parse id", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(parsed)
}
