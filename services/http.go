package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-nova/atelier_api/services/handlers"
	"github.com/atelier-nova/atelier_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc      *AdminAuthService
	contentSvc   *ContentService
	markdownSvc  *MarkdownService
	mediaSvc     *MediaService
	siteSvc      *SiteService
	rateLimitSvc *RateLimitService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(ADMIN_AUTH_SVC).(*AdminAuthService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.markdownSvc = svc.Service(MARKDOWN_SVC).(*MarkdownService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.siteSvc = svc.Service(SITE_SVC).(*SiteService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	svc.app = svc.buildApp()

	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))
	app.Use(MonitoringMiddleware())

	app.Get("/ping", svc.ping)
	app.Static("/uploads", svc.mediaSvc.UploadDir())

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	postHandler := handlers.NewPostHandler(svc.contentSvc, svc.markdownSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)
	siteHandler := handlers.NewSiteHandler(svc.siteSvc)
	adminHandler := handlers.NewAdminHandler(svc.rateLimitSvc)

	v1 := app.Group("/api/v1")

	// Public marketing + blog surface
	v1.Get("/posts", postHandler.ListPublished)
	v1.Get("/posts/:slug", postHandler.GetPublished)
	v1.Get("/site/services", siteHandler.Services)
	v1.Get("/site/portfolio", siteHandler.Portfolio)
	v1.Get("/site/testimonials", siteHandler.Testimonials)
	v1.Get("/site/faq", siteHandler.FAQ)

	// Admin auth
	v1.Post("/admin/login", authHandler.Login)
	v1.Post("/admin/logout", authHandler.Logout)
	v1.Get("/admin/session", authHandler.Session)

	// Admin CMS, throttled and session-gated
	admin := v1.Group("/admin", svc.rateLimitSvc.APIRateLimit(), svc.authSvc.RequireAdmin())
	admin.Get("/posts", postHandler.ListAll)
	admin.Post("/posts", postHandler.Create)
	admin.Get("/posts/:slug", postHandler.Get)
	admin.Put("/posts/:slug", postHandler.Update)
	admin.Delete("/posts/:slug", postHandler.Delete)
	admin.Post("/uploads", mediaHandler.Upload)
	admin.Delete("/uploads/:name", mediaHandler.Delete)
	admin.Get("/rate-limits", adminHandler.RateLimitStats)
	admin.Delete("/rate-limits/:identifier", adminHandler.ResetRateLimit)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	return app
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseOK(c, "pong")
}

// errorHandler converts service errors into the JSON envelope. AppErrors
// keep their status and message; anything else is logged and flattened to a
// generic 500 so internals never leak to the client.
func errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled error")
	return shared.ResponseInternalError(c)
}
