package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-gateway/internal/observability"
	"github.com/spec-kit/booking-gateway/internal/service"
)

// OpsHandler exposes counters and the audit trail for operators.
type OpsHandler struct {
	metrics *observability.Metrics
	audit   *service.AuditService
}

// NewOpsHandler constructs handler.
func NewOpsHandler(metrics *observability.Metrics, audit *service.AuditService) *OpsHandler {
	return &OpsHandler{metrics: metrics, audit: audit}
}

// Metrics handles GET /ops/metrics.
func (h *OpsHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}

// AuditTrail handles GET /ops/audit.
func (h *OpsHandler) AuditTrail(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	rows, err := h.audit.Recent(c.UserContext(), limit)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		items = append(items, fiber.Map{
			"id":          row.ID,
			"type":        row.Type,
			"user_id":     row.UserID,
			"occurred_at": row.OccurredAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
