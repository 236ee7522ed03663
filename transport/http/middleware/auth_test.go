package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asteria/config"
	"asteria/infras/jwt"
	"asteria/infras/otel/mocks"
	"asteria/permissions"
	"asteria/shared/constant"
	"asteria/transport/http/middleware"
)

func newAuthRole(t *testing.T) (middleware.AuthRole, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 10080

	jwtService := jwt.New(cfg)

	permissionData := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/quotes/", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin, constant.RoleUser}},
			{Path: "/v1/users/", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin}},
		},
	}

	return middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissionData, cfg), jwtService
}

func newRouter(t *testing.T, authRole middleware.AuthRole) http.Handler {
	t.Helper()

	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(authRole.Auth)
	router.Use(authRole.RBAC)
	router.Get(constant.PathLogin, ok)
	router.Get("/v1/quotes/", ok)
	router.Get("/v1/users/", ok)

	return router
}

func accessToken(t *testing.T, jwtService jwt.JWT, role string) string {
	t.Helper()

	pair, err := jwtService.GenerateTokenPair("test-id", "user@example.com", role)
	require.NoError(t, err)

	return "Bearer " + pair.AccessToken
}

func browserGet(target, authorization string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeHTML)

	if authorization != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, authorization)
	}

	return req
}

func TestAuthLoginPageRedirect(t *testing.T) {
	authRole, jwtService := newAuthRole(t)
	router := newRouter(t, authRole)

	t.Run("authenticated admin is sent to the panel", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserGet(constant.PathLogin, accessToken(t, jwtService, constant.RoleAdmin)))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, constant.PathAdminHome, rec.Header().Get("Location"))
	})

	t.Run("authenticated user is sent to the front page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserGet(constant.PathLogin, accessToken(t, jwtService, constant.RoleUser)))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, constant.PathUserHome, rec.Header().Get("Location"))
	})

	t.Run("unauthenticated visitor reaches the login page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserGet(constant.PathLogin, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("a stale token still reaches the login page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserGet(constant.PathLogin, "Bearer not-a-token"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthUnauthenticated(t *testing.T) {
	authRole, _ := newAuthRole(t)
	router := newRouter(t, authRole)

	t.Run("browser request is bounced to login with a callback", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserGet("/v1/quotes/", ""))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, constant.PathLogin+"?callbackUrl=%2Fv1%2Fquotes%2F", rec.Header().Get("Location"))
	})

	t.Run("api request gets the json error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRBAC(t *testing.T) {
	authRole, jwtService := newAuthRole(t)
	router := newRouter(t, authRole)

	t.Run("allowed role passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/users/", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, accessToken(t, jwtService, constant.RoleAdmin))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("api request with the wrong role gets the json error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/users/", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, accessToken(t, jwtService, constant.RoleUser))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("browser request with the wrong role lands on access denied", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserGet("/v1/users/", accessToken(t, jwtService, constant.RoleUser)))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, constant.PathAccessDenied, rec.Header().Get("Location"))
	})
}
