package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/atelier-nova/atelier_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType   = flag.String("type", "all", "Type of seeding: all, posts, site")
		contentDir = flag.String("content", "", "Post directory (overrides CONTENT_DIR)")
		siteDir    = flag.String("site", "", "Site content directory (overrides SITE_CONTENT_DIR)")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	posts := *contentDir
	if posts == "" {
		posts = os.Getenv("CONTENT_DIR")
		if posts == "" {
			posts = "content/posts"
		}
	}

	site := *siteDir
	if site == "" {
		site = os.Getenv("SITE_CONTENT_DIR")
		if site == "" {
			site = "content/site"
		}
	}

	mainSeeder := seeders.NewMainSeeder(posts, site)

	var err error
	switch *seedType {
	case "all":
		log.Println("Seeding starter posts and site content...")
		err = mainSeeder.SeedAll()
	case "posts":
		err = mainSeeder.SeedPosts()
	case "site":
		err = mainSeeder.SeedSite()
	default:
		log.Fatalf("Unknown seed type: %s", *seedType)
	}

	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
}

func showHelp() {
	log.Println("Usage: seed [-type all|posts|site] [-content DIR] [-site DIR]")
	log.Println("Writes starter blog posts and marketing content files for local development.")
	log.Println("Existing files are never overwritten.")
}
