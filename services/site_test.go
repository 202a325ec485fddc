package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSiteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSiteServicesParsed(t *testing.T) {
	dir := t.TempDir()
	writeSiteFile(t, dir, "services.yaml", `
- slug: brand
  title: Brand Identity
  summary: Logos, type systems and guidelines.
  icon: palette
  highlights:
    - Logo suites
    - Brand guidelines
- slug: web
  title: Web Design
  summary: Marketing sites that convert.
  icon: monitor
`)

	svc := NewSiteService(dir)

	items, err := svc.Services()
	if err != nil {
		t.Fatalf("Services: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Slug != "brand" || items[0].Title != "Brand Identity" {
		t.Errorf("first item = %+v", items[0])
	}
	if len(items[0].Highlights) != 2 {
		t.Errorf("highlights = %v", items[0].Highlights)
	}
}

func TestSiteFAQParsed(t *testing.T) {
	dir := t.TempDir()
	writeSiteFile(t, dir, "faq.yaml", `
- question: How long does a project take?
  answer: Most engagements run six to ten weeks.
`)

	svc := NewSiteService(dir)

	items, err := svc.FAQ()
	if err != nil {
		t.Fatalf("FAQ: %v", err)
	}
	if len(items) != 1 || items[0].Question == "" || items[0].Answer == "" {
		t.Errorf("items = %+v", items)
	}
}

func TestSiteMissingFileIsEmpty(t *testing.T) {
	svc := NewSiteService(t.TempDir())

	items, err := svc.Portfolio()
	if err != nil {
		t.Fatalf("Portfolio: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %+v, want empty", items)
	}
}

func TestSiteMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeSiteFile(t, dir, "testimonials.yaml", "- quote: [unclosed\n")

	svc := NewSiteService(dir)

	if _, err := svc.Testimonials(); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
