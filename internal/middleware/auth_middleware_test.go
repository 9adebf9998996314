package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"design-dojo/internal/dto"
	"design-dojo/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// ManualMockTokenValidator maps raw tokens to claims.
type ManualMockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func newValidator() *ManualMockTokenValidator {
	return &ManualMockTokenValidator{
		ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			registered := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
			switch tokenString {
			case "valid_access_token":
				return &dto.AuthClaims{UserID: "user123", TokenType: "access", RegisteredClaims: registered}, nil
			case "valid_refresh_token":
				return &dto.AuthClaims{UserID: "user456", TokenType: "refresh", RegisteredClaims: registered}, nil
			default:
				return nil, errors.New("invalid token")
			}
		},
	}
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name                string
		authHeader          string
		expectedUserIDLocal interface{}
	}{
		{name: "No Auth Header", authHeader: "", expectedUserIDLocal: nil},
		{name: "Valid Access Token", authHeader: "Bearer valid_access_token", expectedUserIDLocal: "user123"},
		{name: "Invalid Token", authHeader: "Bearer invalid_token", expectedUserIDLocal: nil},
		{name: "Refresh Token instead of Access", authHeader: "Bearer valid_refresh_token", expectedUserIDLocal: nil},
		{name: "Malformed Auth Header - No Bearer", authHeader: "Basic some_token", expectedUserIDLocal: nil},
		{name: "Malformed Auth Header - Bearer No Token", authHeader: "Bearer ", expectedUserIDLocal: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()

			nextHandlerCalled := false
			var userIDLocalValue interface{}
			app.Get("/test_optional_auth", middleware.OptionalAuth(newValidator()), func(c *fiber.Ctx) error {
				nextHandlerCalled = true
				userIDLocalValue = c.Locals(middleware.UserIDKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/test_optional_auth", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req, -1)

			assert.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.True(t, nextHandlerCalled, "Next handler was not called")
			assert.Equal(t, tc.expectedUserIDLocal, userIDLocalValue)
		})
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"No Auth Header", "", fiber.StatusUnauthorized},
		{"Wrong Scheme", "Basic abc", fiber.StatusUnauthorized},
		{"Invalid Token", "Bearer nope", fiber.StatusUnauthorized},
		{"Refresh Token", "Bearer valid_refresh_token", fiber.StatusUnauthorized},
		{"Valid Access Token", "Bearer valid_access_token", fiber.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected", middleware.Protected(newValidator()), func(c *fiber.Ctx) error {
				return c.SendString(middleware.UserIDFromCtx(c))
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		idHeader       string
		expectedStatus int
		expectedUserID string
	}{
		{"Bearer wins over id header", "Bearer valid_access_token", "legacy", fiber.StatusOK, "user123"},
		{"Invalid Bearer falls back to id header", "Bearer nope", "legacy", fiber.StatusOK, "legacy"},
		{"id header only", "", "legacy", fiber.StatusOK, "legacy"},
		{"Neither", "", "", fiber.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			var got string
			app.Get("/identify", middleware.Identify(newValidator()), func(c *fiber.Ctx) error {
				got = middleware.UserIDFromCtx(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/identify", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			if tc.idHeader != "" {
				req.Header.Set("id", tc.idHeader)
			}
			resp, err := app.Test(req, -1)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserID, got)
		})
	}
}
