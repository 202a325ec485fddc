package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/atelier-nova/atelier_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// @Summary Upload an image (Admin)
// @Description Store an image and return its public URL
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file (PNG, JPG, GIF, WebP, SVG)"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/uploads [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return shared.NewBadRequestError(err, "No image file provided")
	}

	resp, err := h.mediaSvc.Upload(file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Image uploaded", resp)
}

// @Summary Delete an uploaded image (Admin)
// @Description Remove an uploaded file by name
// @Tags admin
// @Produce json
// @Param name path string true "Uploaded file name"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/uploads/{name} [delete]
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	if err := h.mediaSvc.Delete(c.Params("name")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Image deleted", nil)
}
