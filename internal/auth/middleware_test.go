package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-service/internal/auth"
	"github.com/spec-kit/study-service/internal/domain"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

func newTestApp(tm *auth.TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})

	mw := auth.NewMiddleware(tm)
	app.Get("/user-only", mw.Handle, auth.RequireUser(), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.SendString(principal.SubjectID)
	})
	app.Get("/admin-only", mw.Handle, auth.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	app := newTestApp(auth.NewTokenManager("test-secret", 60))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "not_bearer", header: "Basic abc"},
		{name: "no_token", header: "Bearer"},
		{name: "garbage_token", header: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	app := newTestApp(tm)

	expired := issueExpiredToken(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	app := newTestApp(tm)

	userToken, _, err := tm.GenerateToken("U1", domain.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tm.GenerateToken("A1", domain.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{name: "user_on_user_endpoint", path: "/user-only", token: userToken, wantStatus: http.StatusOK},
		{name: "admin_on_user_endpoint", path: "/user-only", token: adminToken, wantStatus: http.StatusForbidden},
		{name: "user_on_admin_endpoint", path: "/admin-only", token: userToken, wantStatus: http.StatusForbidden},
		{name: "admin_on_admin_endpoint", path: "/admin-only", token: adminToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func issueExpiredToken(t *testing.T, secret string) string {
	t.Helper()
	claims := &auth.Claims{
		Role: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "U1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
