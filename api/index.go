package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/di"
	"bazaar/shared/logger"
	"bazaar/shared/timezone"
	transport "bazaar/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler serves one request in a serverless runtime. Dependencies are built on the first call and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Error().Err(err).Msg("Failed to load application timezone, using UTC")
		}

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
