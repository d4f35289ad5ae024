package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/timeshard-api/internal/domain/vo"
)

type LayoutDescribeService interface {
	DescribeLayout(ctx context.Context) vo.LayoutInfo
}

type DescribeLayoutHandler struct {
	service LayoutDescribeService
	logger  *slog.Logger
}

func NewDescribeLayoutHandler(service LayoutDescribeService, logger *slog.Logger) *DescribeLayoutHandler {
	return &DescribeLayoutHandler{service: service, logger: logger}
}

func (h *DescribeLayoutHandler) Register(router fiber.Router) {
	router.Get("/layout", h.Handle)
}

func (h *DescribeLayoutHandler) Handle(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.service.DescribeLayout(c.Context()))
}
