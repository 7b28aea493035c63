package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/config"
	"bazaar/infras/jwt"
	"bazaar/infras/otel/mocks"
	"bazaar/internal/handlers/health"
	"bazaar/permissions"
	"bazaar/shared/cache"
	"bazaar/transport/http/middleware"
	"bazaar/transport/http/router"
)

func newServer(t *testing.T) *HTTP {
	t.Helper()

	redisServer, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(redisServer.Close)

	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "secret"
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://bazaar.example"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	otel := mocks.NewOtel()
	app := middleware.NewAppMiddleware(otel, cfg, cache.NewRedisCache(client, otel))
	authRole := middleware.NewAuthRoleMiddleware(jwt.New(cfg), otel, permissions.Get(), cfg)

	handlers := router.DomainHandlers{
		Health: health.NewWithChecks(map[string]health.Check{
			"postgres": func(context.Context) error { return nil },
		}),
	}

	return New(cfg, router.New(cfg, handlers, app, authRole))
}

func get(server http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestHTTP_Health(t *testing.T) {
	server := newServer(t)

	assert.Equal(t, http.StatusOK, get(server, "/health").Code)
	assert.Equal(t, ServerStateReady, server.State())

	server.state.Store(int32(ServerStateInGracePeriod))

	rec := get(server, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHTTP_Routes(t *testing.T) {
	server := newServer(t)

	t.Run("versioned routes require a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(server, "/v1/bookings/user").Code)
	})

	t.Run("metrics exposes request latency", func(t *testing.T) {
		get(server, "/health")

		rec := get(server, "/metrics")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bazaar_http_request_duration_seconds")
	})

	t.Run("swagger document", func(t *testing.T) {
		rec := get(server, "/swagger/doc.json")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/v1/booking/offers/{offerId}/accept")
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/bookings/user", nil)
		req.Header.Set("Origin", "https://bazaar.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		assert.Equal(t, "https://bazaar.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
