package services

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/alphabatem/common/context"
	"gopkg.in/yaml.v3"

	"github.com/atelier-nova/atelier_api/model"
	"github.com/atelier-nova/atelier_api/shared"
)

// SiteService serves the marketing page data: service offerings, portfolio,
// testimonials and FAQ. Each collection is a YAML file under the site
// content directory, re-read on every request like the post store. A missing
// file is an empty collection, not an error.
type SiteService struct {
	context.DefaultService

	siteDir string
}

const SITE_SVC = "site_svc"

const defaultSiteDir = "content/site"

func (svc SiteService) Id() string {
	return SITE_SVC
}

func (svc *SiteService) Configure(ctx *context.Context) error {
	svc.siteDir = os.Getenv("SITE_CONTENT_DIR")
	if svc.siteDir == "" {
		svc.siteDir = defaultSiteDir
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *SiteService) Start() error {
	return nil
}

// NewSiteService builds a reader rooted at dir, outside the container.
func NewSiteService(dir string) *SiteService {
	return &SiteService{siteDir: dir}
}

func (svc *SiteService) Services() ([]model.ServiceOffering, error) {
	var items []model.ServiceOffering
	if err := svc.readCollection("services.yaml", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (svc *SiteService) Portfolio() ([]model.PortfolioItem, error) {
	var items []model.PortfolioItem
	if err := svc.readCollection("portfolio.yaml", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (svc *SiteService) Testimonials() ([]model.Testimonial, error) {
	var items []model.Testimonial
	if err := svc.readCollection("testimonials.yaml", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (svc *SiteService) FAQ() ([]model.FAQEntry, error) {
	var items []model.FAQEntry
	if err := svc.readCollection("faq.yaml", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (svc *SiteService) readCollection(name string, out interface{}) error {
	raw, err := os.ReadFile(filepath.Join(svc.siteDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return shared.NewInternalError(err, "Failed to read site content")
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return shared.NewInternalError(err, "Malformed site content file")
	}

	return nil
}
