package seeders

import (
	"errors"
	"log"
	"net/http"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/services"
	"github.com/atelier-nova/atelier_api/shared"
)

// PostSeeder writes a few starter blog posts through the content store so
// the seeded files carry the same front-matter the admin editor produces.
type PostSeeder struct {
	store *services.ContentService
}

func NewPostSeeder(dir string) *PostSeeder {
	return &PostSeeder{store: services.NewContentService(dir, nil)}
}

func (s *PostSeeder) SeedPosts() error {
	published := true

	posts := []dto.CreatePostRequest{
		{
			Title:    "Designing for Attention in a Distracted World",
			Category: "Design",
			Tags:     []string{"design", "ux"},
			Author:   "Studio Team",
			Content: "Attention is the scarcest resource your landing page competes for.\n\n" +
				"## Start with one message\n\n" +
				"Every section should earn its place. If a block does not move the visitor " +
				"toward the single action the page exists for, cut it.\n\n" +
				"## Motion with restraint\n\n" +
				"Animation should direct the eye, not chase it.\n",
			Featured:  true,
			Published: &published,
		},
		{
			Title:    "Why We Still Ship Marketing Sites as Static Files",
			Category: "Engineering",
			Tags:     []string{"engineering", "performance"},
			Author:   "Studio Team",
			Content: "A marketing site has one job: load instantly and stay up.\n\n" +
				"Static output with a thin API behind it gives us both, and keeps the " +
				"editing workflow in plain markdown files an editor can diff and review.\n",
			Published: &published,
		},
		{
			Title:    "A Brand Refresh Checklist",
			Category: "Strategy",
			Tags:     []string{"branding"},
			Author:   "Studio Team",
			Content: "Before any pixels move, agree on what stays. A refresh is not a rebrand.\n\n" +
				"1. Inventory every surface the brand touches\n" +
				"2. Name what is working\n" +
				"3. Only then, redesign\n",
			Published: &published,
		},
	}

	created := 0
	for _, req := range posts {
		if _, err := s.store.Create(req); err != nil {
			var appErr *shared.AppError
			if errors.As(err, &appErr) && appErr.StatusCode == http.StatusConflict {
				continue
			}
			return err
		}
		created++
	}

	log.Printf("Seeded %d starter posts (%d already present)", created, len(posts)-created)
	return nil
}
