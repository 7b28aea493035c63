package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goOtel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"bazaar/config"
	"bazaar/infras/jwt"
	"bazaar/infras/otel/mocks"
	"bazaar/permissions"
	"bazaar/shared"
	"bazaar/shared/cache"
	"bazaar/shared/constant"
	"bazaar/shared/model"
	"bazaar/transport/http/middleware"
)

func echoPrincipal(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.GetPrincipal(r.Context())

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(principal.ID))
}

func newAuthRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	perms := permissions.Get()
	require.NotNil(t, perms)

	auth := middleware.NewAuthRoleMiddleware(jwt.New(cfg), mocks.NewOtel(), perms, cfg)

	router := chi.NewRouter()
	router.Route("/v1", func(v1 chi.Router) {
		v1.Use(auth.APIKey, auth.Auth, auth.RBAC)

		v1.Route("/bookings", func(bookings chi.Router) {
			bookings.Get("/requirements/{listingId}", echoPrincipal)
			bookings.Patch("/{id}/status", echoPrincipal)
			bookings.Post("/", echoPrincipal)
		})
	})

	return router
}

func TestAuthRole(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "secret"
	cfg.App.APIKey = "internal-key"

	router := newAuthRouter(t, cfg)
	tokens := jwt.New(cfg)

	token := func(role string, ttl time.Duration) string {
		signed, err := tokens.GenerateAccessToken(model.Principal{ID: role + "-1", Role: role}, ttl)
		require.NoError(t, err)

		return "Bearer " + signed
	}

	tests := []struct {
		name          string
		method        string
		path          string
		authorization string
		apiKey        string
		wantCode      int
		wantBody      string
	}{
		{name: "public route without token", method: http.MethodGet, path: "/v1/bookings/requirements/l-1", wantCode: http.StatusOK},
		{name: "missing token", method: http.MethodPatch, path: "/v1/bookings/b-1/status", wantCode: http.StatusUnauthorized},
		{name: "malformed header", method: http.MethodPatch, path: "/v1/bookings/b-1/status", authorization: "Token abc", wantCode: http.StatusUnauthorized},
		{name: "expired token", method: http.MethodPatch, path: "/v1/bookings/b-1/status", authorization: token(constant.RoleVendor, -time.Minute), wantCode: http.StatusUnauthorized},
		{name: "vendor may change status", method: http.MethodPatch, path: "/v1/bookings/b-1/status", authorization: token(constant.RoleVendor, time.Hour), wantCode: http.StatusOK, wantBody: "vendor-1"},
		{name: "customer may not change status", method: http.MethodPatch, path: "/v1/bookings/b-1/status", authorization: token(constant.RoleCustomer, time.Hour), wantCode: http.StatusForbidden},
		{name: "customer may book", method: http.MethodPost, path: "/v1/bookings", authorization: token(constant.RoleCustomer, time.Hour), wantCode: http.StatusOK, wantBody: "customer-1"},
		{name: "internal api key", method: http.MethodPatch, path: "/v1/bookings/b-1/status", apiKey: "internal-key", wantCode: http.StatusOK},
		{name: "wrong api key", method: http.MethodPatch, path: "/v1/bookings/b-1/status", apiKey: "guess", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.authorization)
			}

			if tt.apiKey != "" {
				req.Header.Set(constant.RequestHeaderAPIKey, tt.apiKey)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthRole_ForbiddenBody(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "secret"

	router := newAuthRouter(t, cfg)

	signed, err := jwt.New(cfg).GenerateAccessToken(model.Principal{ID: "c-1", Role: constant.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/v1/bookings/b-1/status", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+signed)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func newLimited(t *testing.T, maxReqs int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxReqs
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache.NewRedisCache(client, mocks.NewOtel()))

	handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	return app.Tracing(handler), server
}

func hit(handler http.Handler, agent string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/user", nil)
	req.Header.Set(constant.RequestHeaderUserAgent, agent)
	req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("fixed window in redis", func(t *testing.T) {
		handler, server := newLimited(t, 2)

		first := hit(handler, "window-agent")
		assert.Equal(t, http.StatusNoContent, first.Code)
		assert.Equal(t, "1", first.Header().Get(constant.RequestHeaderRateLimitRemaining))

		assert.Equal(t, http.StatusNoContent, hit(handler, "window-agent").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(handler, "window-agent").Code)

		assert.True(t, server.Exists("limiter:203.0.113.7:window-agent"))

		server.FastForward(61 * time.Second)

		assert.Equal(t, http.StatusNoContent, hit(handler, "window-agent").Code)
	})

	t.Run("clients are counted apart", func(t *testing.T) {
		handler, _ := newLimited(t, 1)

		assert.Equal(t, http.StatusNoContent, hit(handler, "agent-a").Code)
		assert.Equal(t, http.StatusNoContent, hit(handler, "agent-b").Code)
	})

	t.Run("local bucket while redis is down", func(t *testing.T) {
		handler, server := newLimited(t, 2)
		server.Close()

		assert.Equal(t, http.StatusNoContent, hit(handler, "outage-agent").Code)
		assert.Equal(t, http.StatusNoContent, hit(handler, "outage-agent").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(handler, "outage-agent").Code)
	})
}

func TestTracing(t *testing.T) {
	previous := goOtel.GetTextMapPropagator()
	goOtel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { goOtel.SetTextMapPropagator(previous) })

	recorder := mocks.NewRecorder()
	cfg := &config.Config{}
	cfg.App.Name = "bazaar"

	app := middleware.NewAppMiddleware(recorder, cfg, nil)

	router := chi.NewRouter()
	router.Use(app.Tracing)
	router.Get("/v1/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	router.ServeHTTP(httptest.NewRecorder(), req)

	scope, ok := recorder.Find("GET /v1/bookings/b-1")
	require.True(t, ok)

	route, _ := scope.Attribute("http.route")
	assert.Equal(t, "/v1/bookings/{id}", route)

	status, _ := scope.Attribute("http.status_code")
	assert.Equal(t, http.StatusAccepted, status)

	assert.True(t, scope.Ended())
	assert.True(t, scope.Parent.IsRemote())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", scope.Parent.TraceID().String())
}
