package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"bazaar/config"
	"bazaar/infras/jwt"
	"bazaar/infras/otel"
	"bazaar/permissions"
	"bazaar/shared"
	"bazaar/shared/constant"
	"bazaar/shared/failure"
	"bazaar/transport/http/response"
)

type internalCallerKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

var tokenMessages = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidToken, "Invalid token"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
}

func tokenMessage(err error) string {
	for _, tm := range tokenMessages {
		if errors.Is(err, tm.err) {
			return tm.message
		}
	}

	return "Token validation failed"
}

// routePattern resolves the registered pattern so permissions can be keyed by "/v1/bookings/{id}".
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func internalCaller(request *http.Request) bool {
	internal, _ := request.Context().Value(internalCallerKey{}).(bool)

	return internal
}

func deny(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

// public reports routes the permission table serves without a token.
func (m *authRoleImpl) public(request *http.Request) bool {
	if internalCaller(request) {
		return true
	}

	if m.permission == nil {
		return false
	}

	return m.permission.FindPermissions(routePattern(request), request.Method).Skip
}

// Auth validates the bearer token and places the principal on the context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if m.public(request) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.method":     request.Method,
		})

		header := request.Header.Get(constant.RequestHeaderAuthorization)
		if header == "" {
			deny(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			deny(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			deny(writer, scope, failure.Unauthorized(tokenMessage(err)))

			return
		}

		next.ServeHTTP(writer, request.WithContext(shared.WithPrincipal(ctx, claims.Principal())))
	})
}

// RBAC checks the caller's role against the permission table. It runs after Auth.
// Routes missing from the table are open to any authenticated role.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.permission == nil && !internalCaller(request) {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		if m.public(request) || m.permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		allowed := m.permission.FindPermissions(routePattern(request), request.Method).Permissions
		principal, _ := shared.GetPrincipal(ctx)

		if len(allowed) > 0 && !slices.Contains(allowed, principal.Role) {
			scope.SetAttributes(map[string]any{
				"user_role":     principal.Role,
				"allowed_roles": allowed,
			})
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal services through with X-API-Key. Requests without the header continue to Auth.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || key != m.cfg.App.APIKey {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallerKey{}, true)))
	})
}
