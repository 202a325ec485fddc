package seeders

import "log"

// MainSeeder coordinates the content scaffolding for local development.
type MainSeeder struct {
	postsDir string
	siteDir  string
}

func NewMainSeeder(postsDir, siteDir string) *MainSeeder {
	return &MainSeeder{postsDir: postsDir, siteDir: siteDir}
}

func (s *MainSeeder) SeedAll() error {
	if err := s.SeedSite(); err != nil {
		log.Printf("Site content seeding failed: %v", err)
		return err
	}

	if err := s.SeedPosts(); err != nil {
		log.Printf("Post seeding failed: %v", err)
		return err
	}

	return nil
}

func (s *MainSeeder) SeedPosts() error {
	return NewPostSeeder(s.postsDir).SeedPosts()
}

func (s *MainSeeder) SeedSite() error {
	return NewSiteSeeder(s.siteDir).SeedSite()
}
