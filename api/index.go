package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"asteria/config"
	"asteria/di"
	"asteria/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("invalid service configuration")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	service, err := di.InitializeService()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize service")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	service.Handler().ServeHTTP(w, r)
}
