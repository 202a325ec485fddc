package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/model"
)

type AdminAuthServiceInterface interface {
	VerifyPassword(password, ip string) dto.AdminLoginResult
	EstablishSession(c *fiber.Ctx, ip string) (string, error)
	CheckSession(c *fiber.Ctx) bool
	CurrentSession(c *fiber.Ctx) *model.SessionRecord
	ClearSession(c *fiber.Ctx)
	RequireAdmin() fiber.Handler
}

type ContentServiceInterface interface {
	List(includeDrafts bool) (*dto.PostListResponse, error)
	Get(slug string) (*model.Post, error)
	Create(req dto.CreatePostRequest) (*model.Post, error)
	Update(slug string, req dto.UpdatePostRequest) (*model.Post, error)
	Delete(slug string) error
}

type MarkdownServiceInterface interface {
	Render(markdown string) (string, error)
}

type MediaServiceInterface interface {
	Upload(file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	Delete(name string) error
}

type SiteServiceInterface interface {
	Services() ([]model.ServiceOffering, error)
	Portfolio() ([]model.PortfolioItem, error)
	Testimonials() ([]model.Testimonial, error)
	FAQ() ([]model.FAQEntry, error)
}

type RateLimitServiceInterface interface {
	Stats() dto.RateLimitStats
	Reset(identifier string)
}
