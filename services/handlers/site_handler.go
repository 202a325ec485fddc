package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelier-nova/atelier_api/shared"
)

type SiteHandler struct {
	siteSvc SiteServiceInterface
}

func NewSiteHandler(siteSvc SiteServiceInterface) *SiteHandler {
	return &SiteHandler{siteSvc: siteSvc}
}

// @Summary List service offerings
// @Tags site
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.ServiceOffering}
// @Router /api/v1/site/services [get]
func (h *SiteHandler) Services(c *fiber.Ctx) error {
	items, err := h.siteSvc.Services()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, items)
}

// @Summary List portfolio items
// @Tags site
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.PortfolioItem}
// @Router /api/v1/site/portfolio [get]
func (h *SiteHandler) Portfolio(c *fiber.Ctx) error {
	items, err := h.siteSvc.Portfolio()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, items)
}

// @Summary List testimonials
// @Tags site
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Testimonial}
// @Router /api/v1/site/testimonials [get]
func (h *SiteHandler) Testimonials(c *fiber.Ctx) error {
	items, err := h.siteSvc.Testimonials()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, items)
}

// @Summary List FAQ entries
// @Tags site
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.FAQEntry}
// @Router /api/v1/site/faq [get]
func (h *SiteHandler) FAQ(c *fiber.Ctx) error {
	items, err := h.siteSvc.FAQ()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, items)
}
