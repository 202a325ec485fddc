package main

import (
	"github.com/atelier-nova/atelier_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.RateLimitService{},
		&services.SessionService{},
		&services.AdminAuthService{},
		&services.ContentService{},
		&services.MarkdownService{},
		&services.SiteService{},
		&services.MinIOService{},
		&services.MediaService{},
		&services.MonitoringService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service runtime exited")
		return
	}
}
