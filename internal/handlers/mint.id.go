package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/timeshard-api/internal/domain/vo"
)

type IDMintService interface {
	Mint(ctx context.Context, request vo.MintRequest) (vo.MintResult, error)
}

type MintIDHandler struct {
	service IDMintService
	logger  *slog.Logger
}

func NewMintIDHandler(service IDMintService, logger *slog.Logger) *MintIDHandler {
	return &MintIDHandler{service: service, logger: logger}
}

func (h *MintIDHandler) Register(router fiber.Router) {
	router.Post("/ids", h.Handle)
}

func (h *MintIDHandler) Handle(c fiber.Ctx) error {
	var requestBody vo.MintRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&requestBody); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	result, err := h.service.Mint(c.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, vo.ErrInvalidCount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid count",
			})
		case errors.Is(err, vo.ErrInvalidPrefixPosition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "prefix position out of range",
			})
		case errors.Is(err, vo.ErrClockSkew):
			h.logger.Warn("id generation refused, clock moved backwards", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "clock moved backwards, retry later",
			})
		}

		h.logger.Error("failed to mint ids", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
