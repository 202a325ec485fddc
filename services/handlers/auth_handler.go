package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/shared"
)

type AuthHandler struct {
	authSvc AdminAuthServiceInterface
}

func NewAuthHandler(authSvc AdminAuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// @Summary Admin login
// @Description Verify the admin password and establish a session cookie
// @Tags admin
// @Accept json
// @Produce json
// @Param loginRequest body dto.AdminLoginRequest true "Admin password"
// @Success 200 {object} dto.AdminLoginResult
// @Router /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	ip := shared.ClientIP(c)

	result := h.authSvc.VerifyPassword(req.Password, ip)
	if !result.Success {
		// Failure payloads keep their fields at the top level: the admin
		// form reads remainingAttempts and resetTime from this body to
		// render the attempt counter and lockout countdown.
		status := http.StatusUnauthorized
		if result.RateLimited {
			status = http.StatusTooManyRequests
		}
		return c.Status(status).JSON(result)
	}

	if _, err := h.authSvc.EstablishSession(c, ip); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.AdminLoginResult{Success: true})
}

// @Summary Admin logout
// @Description Clear the admin session cookie
// @Tags admin
// @Produce json
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.authSvc.ClearSession(c)
	return shared.ResponseJSON(c, http.StatusOK, "Logged out successfully", nil)
}

// @Summary Admin session check
// @Description Report whether the request carries a valid admin session
// @Tags admin
// @Produce json
// @Success 200 {object} shared.Response{data=dto.AdminSessionResponse}
// @Router /api/v1/admin/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	record := h.authSvc.CurrentSession(c)
	if record == nil {
		return shared.ResponseOK(c, dto.AdminSessionResponse{Authenticated: false})
	}

	// Rotate the token on every authenticated check, same as any other
	// admin request.
	h.authSvc.CheckSession(c)

	return shared.ResponseOK(c, dto.AdminSessionResponse{
		Authenticated: true,
		Created:       &record.Created,
		LastActivity:  &record.LastActivity,
	})
}
