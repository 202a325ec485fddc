package dto

import (
	"github.com/atelier-nova/atelier_api/model"
)

// ==================== POST REQUEST DTOs ====================

type CreatePostRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=200"`
	Content         string   `json:"content" validate:"required"`
	Date            string   `json:"date,omitempty"`
	Category        string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags            []string `json:"tags,omitempty"`
	Author          string   `json:"author,omitempty" validate:"omitempty,max=100"`
	Excerpt         string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Image           string   `json:"image,omitempty"`
	ImageAlt        string   `json:"imageAlt,omitempty"`
	Featured        bool     `json:"featured"`
	Published       *bool    `json:"published,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty" validate:"omitempty,max=300"`
}

func (r CreatePostRequest) Validate() error {
	return GetValidator().Struct(r)
}

// UpdatePostRequest merges over the stored front-matter: nil pointer fields
// keep the prior value, non-nil fields win.
type UpdatePostRequest struct {
	Title           *string   `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content         *string   `json:"content,omitempty"`
	Category        *string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags            *[]string `json:"tags,omitempty"`
	Author          *string   `json:"author,omitempty" validate:"omitempty,max=100"`
	Excerpt         *string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Image           *string   `json:"image,omitempty"`
	ImageAlt        *string   `json:"imageAlt,omitempty"`
	Featured        *bool     `json:"featured,omitempty"`
	Published       *bool     `json:"published,omitempty"`
	MetaDescription *string   `json:"metaDescription,omitempty" validate:"omitempty,max=300"`
}

func (r UpdatePostRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== POST RESPONSE DTOs ====================

type PostSummary struct {
	Slug string         `json:"slug"`
	Meta model.PostMeta `json:"meta"`
}

type PostListResponse struct {
	Posts []PostSummary `json:"posts"`
	Total int           `json:"total"`
}

type PostDetailResponse struct {
	Slug    string         `json:"slug"`
	Meta    model.PostMeta `json:"meta"`
	Content string         `json:"content"`
	HTML    string         `json:"html,omitempty"`
}
