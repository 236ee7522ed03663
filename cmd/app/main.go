package main

import (
	"asteria/config"
	"asteria/di"
	"asteria/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid service configuration")
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
