package middleware

import (
	"context"
	"strings"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	// LegacyIDHeader carries the caller's user id for clients that predate JWT.
	LegacyIDHeader = "id"
	UserIDKey      = "userID" // Key for storing UserID in fiber.Ctx locals

	tokenTypeAccess = "access"
)

// TokenValidator is the part of service.AuthService the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// bearerClaims returns the claims of a valid access token, or nil with a reason code.
func bearerClaims(c *fiber.Ctx, validator TokenValidator) (*dto.AuthClaims, string, string) {
	authHeader := c.Get(AuthorizationHeader)
	if authHeader == "" {
		return nil, "MISSING_AUTH_HEADER", "Authorization header is missing"
	}
	if !strings.HasPrefix(authHeader, BearerSchema) {
		return nil, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer"
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	if tokenString == "" {
		return nil, "EMPTY_TOKEN", "Token is empty"
	}
	claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
	if err != nil {
		return nil, "INVALID_TOKEN", err.Error()
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, "INVALID_TOKEN_TYPE", "Invalid token type: expected access, got " + claims.TokenType
	}
	return claims, "", ""
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token and sets the userID in the context.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, code, msg := bearerClaims(c, validator)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    code,
				Message: msg,
				Status:  fiber.StatusUnauthorized,
			})
		}
		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// OptionalAuth sets the userID when a valid access token is presented and
// otherwise lets the request through anonymously.
func OptionalAuth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(AuthorizationHeader) == "" {
			return c.Next()
		}
		claims, code, _ := bearerClaims(c, validator)
		if claims == nil {
			logger.Get().Debug("OptionalAuth: proceeding as anonymous", zap.String("reason", code))
			return c.Next()
		}
		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// Identify resolves the caller from a Bearer token, falling back to the
// legacy id header. A request with neither is rejected with 400.
func Identify(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, _, _ := bearerClaims(c, validator); claims != nil {
			c.Locals(UserIDKey, claims.UserID)
			return c.Next()
		}
		if id := strings.TrimSpace(c.Get(LegacyIDHeader)); id != "" {
			c.Locals(UserIDKey, id)
			return c.Next()
		}
		return domain.ValidationErrors{domain.NewMissingFieldError(LegacyIDHeader)}
	}
}

// UserIDFromCtx returns the identity stored by the auth middleware, or "".
func UserIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
