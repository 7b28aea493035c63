package main

import (
	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/di"
	"bazaar/helper"
	"bazaar/shared/logger"
	"bazaar/shared/timezone"
)

// @title Bazaar Booking API
// @version 1.0
// @description Booking requirements, availability, negotiation and bookings for marketplace listings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Service configuration rejected")
	}

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Msg("Failed to load application timezone")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
