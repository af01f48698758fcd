package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/nextmimo/nextmimo_api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file found, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.SqlService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.JWTService{},

		&services.ContentService{},
		&services.ProgressionService{},
		&services.AuthService{},
		&services.UserService{},
		&services.MediaService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	if err = ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("Service context exited")
		return
	}
}
