package middleware

import (
	"asteria/config"
	"asteria/infras/jwt"
	"asteria/infras/otel"
	"asteria/permissions"
	"asteria/shared/constant"
	"asteria/shared/failure"
	"asteria/transport/http/response"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
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

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth validates JWT tokens on every route the permission table does not
// mark as public.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		skip, _ := request.Context().Value(SkipAuthKey("skip")).(bool)

		if skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if wantsHTML(request) && request.URL.Path == constant.PathLogin {
			if target, ok := m.roleHome(request); ok {
				scope.End()
				http.Redirect(writer, request, target, http.StatusFound)

				return
			}

			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission != nil {
			path, method := routePattern(ctx, request)
			permission := m.permission.FindPermissions(path, method)

			if permission.Skip {
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}
		}

		path, method := routePattern(ctx, request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized("Missing authorization header")
			m.rejectUnauthenticated(writer, request, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("Invalid authorization header format")
			m.rejectUnauthenticated(writer, request, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			err := failure.Unauthorized(message)
			m.rejectUnauthenticated(writer, request, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if claims.UserID == "" || claims.Email == "" {
			log.Error().Msg("JWT claims are missing required fields")

			err := failure.Unauthorized("Invalid token claims")
			m.rejectUnauthenticated(writer, request, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		skip, _ := request.Context().Value(SkipAuthKey("skip")).(bool)
		if skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			m.rejectForbidden(writer, request)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, method := routePattern(ctx, request)
		permission := m.permission.FindPermissions(path, method)

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if len(permission.Permissions) > 0 {
			if !slices.Contains(permission.Permissions, userRole) {
				err := failure.ForbiddenError
				scope.TraceError(err)
				scope.SetAttributes(map[string]any{
					"user_role":     userRole,
					"allowed_roles": permission.Permissions,
					"reason":        "role_not_allowed",
				})
				scope.End()
				m.rejectForbidden(writer, request)

				return
			}
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// rejectUnauthenticated answers an unauthenticated request. Browser
// navigation gets bounced to the login page with the original URL as a
// callback, API clients get the JSON error.
func (m *authRoleImpl) rejectUnauthenticated(writer http.ResponseWriter, request *http.Request, err error) {
	if wantsHTML(request) {
		callback := url.QueryEscape(request.URL.RequestURI())
		target := fmt.Sprintf("%s?%s=%s", constant.PathLogin, constant.QueryParamCallbackURL, callback)

		http.Redirect(writer, request, target, http.StatusFound)

		return
	}

	response.WithError(writer, err)
}

// rejectForbidden answers an authenticated request whose role does not
// cover the route. Browsers land on the access denied page, API clients
// get the 403.
func (m *authRoleImpl) rejectForbidden(writer http.ResponseWriter, request *http.Request) {
	if wantsHTML(request) {
		http.Redirect(writer, request, constant.PathAccessDenied, http.StatusFound)

		return
	}

	response.WithError(writer, failure.ForbiddenError)
}

// roleHome resolves the landing page for a request that already carries a
// valid session, admins land on the panel and everyone else on the front
// page. Requests without a usable token report no home so the login page
// stays reachable.
func (m *authRoleImpl) roleHome(request *http.Request) (string, bool) {
	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return "", false
	}

	claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
	if err != nil {
		return "", false
	}

	if claims.Role == constant.RoleAdmin {
		return constant.PathAdminHome, true
	}

	return constant.PathUserHome, true
}

func wantsHTML(request *http.Request) bool {
	return strings.Contains(request.Header.Get(constant.RequestHeaderAccept), constant.ContentTypeHTML)
}

// routePattern resolves the registered chi pattern for the request so
// permission lookups match the table entries instead of concrete URLs.
func routePattern(ctx context.Context, request *http.Request) (string, string) {
	rctx := chi.RouteContext(ctx)
	method := request.Method
	path := rctx.Routes.Find(chi.NewRouteContext(), method, request.URL.Path)

	return path, method
}
