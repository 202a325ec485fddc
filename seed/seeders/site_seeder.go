package seeders

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/atelier-nova/atelier_api/model"
)

// SiteSeeder writes starter marketing content files. Existing files are
// left untouched.
type SiteSeeder struct {
	dir string
}

func NewSiteSeeder(dir string) *SiteSeeder {
	return &SiteSeeder{dir: dir}
}

func (s *SiteSeeder) SeedSite() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	files := map[string]interface{}{
		"services.yaml": []model.ServiceOffering{
			{
				Slug:       "brand-identity",
				Title:      "Brand Identity",
				Summary:    "Naming, visual systems, and guidelines that scale.",
				Icon:       "palette",
				Highlights: []string{"Logo systems", "Brand guidelines", "Art direction"},
			},
			{
				Slug:       "web-design",
				Title:      "Web Design & Build",
				Summary:    "Marketing sites that load fast and convert.",
				Icon:       "layout",
				Highlights: []string{"Design systems", "CMS integration", "Performance budgets"},
			},
			{
				Slug:       "content-strategy",
				Title:      "Content Strategy",
				Summary:    "Editorial planning that keeps a site alive after launch.",
				Icon:       "pen",
			},
		},
		"portfolio.yaml": []model.PortfolioItem{
			{
				Slug:     "harborline-rebrand",
				Title:    "Harborline Rebrand",
				Client:   "Harborline Logistics",
				Summary:  "A full identity and web refresh for a regional freight company.",
				Tags:     []string{"branding", "web"},
				Featured: true,
			},
			{
				Slug:    "fernworks-launch",
				Title:   "Fernworks Product Launch",
				Client:  "Fernworks",
				Summary: "Launch site and campaign assets for a garden-tech startup.",
				Tags:    []string{"web", "campaign"},
			},
		},
		"testimonials.yaml": []model.Testimonial{
			{
				Author:  "Maren Kolstad",
				Role:    "Marketing Director",
				Company: "Harborline Logistics",
				Quote:   "They treated our deadline like their own. The site paid for itself in a quarter.",
			},
		},
		"faq.yaml": []model.FAQEntry{
			{
				Question: "How long does a typical project take?",
				Answer:   "Most engagements run six to ten weeks from kickoff to launch.",
			},
			{
				Question: "Do you work with existing brand guidelines?",
				Answer:   "Yes. We extend what works before proposing anything new.",
			},
		},
	}

	written := 0
	for name, content := range files {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		encoded, err := yaml.Marshal(content)
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return err
		}
		written++
	}

	log.Printf("Seeded %d site content files (%d already present)", written, len(files)-written)
	return nil
}
