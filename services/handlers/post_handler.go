package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/shared"
)

type PostHandler struct {
	contentSvc  ContentServiceInterface
	markdownSvc MarkdownServiceInterface
}

func NewPostHandler(contentSvc ContentServiceInterface, markdownSvc MarkdownServiceInterface) *PostHandler {
	return &PostHandler{
		contentSvc:  contentSvc,
		markdownSvc: markdownSvc,
	}
}

// ==================== PUBLIC ENDPOINTS ====================

// @Summary List published posts
// @Description Blog index: published post metadata, newest first
// @Tags blog
// @Produce json
// @Success 200 {object} shared.Response{data=dto.PostListResponse}
// @Router /api/v1/posts [get]
func (h *PostHandler) ListPublished(c *fiber.Ctx) error {
	resp, err := h.contentSvc.List(false)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get a published post
// @Description Full post by slug, with the body rendered to sanitized HTML
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} shared.Response{data=dto.PostDetailResponse}
// @Router /api/v1/posts/{slug} [get]
func (h *PostHandler) GetPublished(c *fiber.Ctx) error {
	post, err := h.contentSvc.Get(c.Params("slug"))
	if err != nil {
		return err
	}

	// Drafts are invisible on the public surface, indistinguishable from
	// missing posts.
	if !post.Meta.Published {
		return shared.ResponseNotFound(c)
	}

	html, err := h.markdownSvc.Render(post.Content)
	if err != nil {
		log.WithError(err).WithField("slug", post.Slug).Error("Markdown rendering failed")
		html = ""
	}

	return shared.ResponseOK(c, dto.PostDetailResponse{
		Slug:    post.Slug,
		Meta:    post.Meta,
		Content: post.Content,
		HTML:    html,
	})
}

// ==================== ADMIN ENDPOINTS ====================

// @Summary List all posts (Admin)
// @Description All posts including drafts
// @Tags admin
// @Produce json
// @Success 200 {object} shared.Response{data=dto.PostListResponse}
// @Router /api/v1/admin/posts [get]
func (h *PostHandler) ListAll(c *fiber.Ctx) error {
	resp, err := h.contentSvc.List(true)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get a post (Admin)
// @Description Full post by slug, drafts included, raw markdown only
// @Tags admin
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} shared.Response{data=dto.PostDetailResponse}
// @Router /api/v1/admin/posts/{slug} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	post, err := h.contentSvc.Get(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, dto.PostDetailResponse{
		Slug:    post.Slug,
		Meta:    post.Meta,
		Content: post.Content,
	})
}

// @Summary Create a post (Admin)
// @Description Write a new markdown file; the slug is derived from the title
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreatePostRequest true "Post fields"
// @Success 201 {object} shared.Response{data=dto.PostDetailResponse}
// @Router /api/v1/admin/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	post, err := h.contentSvc.Create(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Post created", dto.PostDetailResponse{
		Slug:    post.Slug,
		Meta:    post.Meta,
		Content: post.Content,
	})
}

// @Summary Update a post (Admin)
// @Description Merge submitted fields over stored front-matter and rewrite the file
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param updateRequest body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.PostDetailResponse}
// @Router /api/v1/admin/posts/{slug} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	post, err := h.contentSvc.Update(c.Params("slug"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Post updated", dto.PostDetailResponse{
		Slug:    post.Slug,
		Meta:    post.Meta,
		Content: post.Content,
	})
}

// @Summary Delete a post (Admin)
// @Description Remove the post file
// @Tags admin
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/posts/{slug} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	if err := h.contentSvc.Delete(c.Params("slug")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Post deleted", nil)
}
