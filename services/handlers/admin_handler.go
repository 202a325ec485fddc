package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelier-nova/atelier_api/shared"
)

type AdminHandler struct {
	rateLimitSvc RateLimitServiceInterface
}

func NewAdminHandler(rateLimitSvc RateLimitServiceInterface) *AdminHandler {
	return &AdminHandler{rateLimitSvc: rateLimitSvc}
}

// @Summary Rate limiter statistics (Admin)
// @Description Current limiter configuration and tracked keys
// @Tags admin
// @Produce json
// @Success 200 {object} shared.Response{data=dto.RateLimitStats}
// @Router /api/v1/admin/rate-limits [get]
func (h *AdminHandler) RateLimitStats(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.rateLimitSvc.Stats())
}

// @Summary Clear a rate limit (Admin)
// @Description Forget all attempts recorded for an identifier
// @Tags admin
// @Produce json
// @Param identifier path string true "Limiter identifier"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/rate-limits/{identifier} [delete]
func (h *AdminHandler) ResetRateLimit(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	if identifier == "" {
		return shared.ResponseBadRequest(c, "Missing identifier")
	}

	h.rateLimitSvc.Reset(identifier)
	return shared.ResponseJSON(c, fiber.StatusOK, "Rate limit cleared", nil)
}
