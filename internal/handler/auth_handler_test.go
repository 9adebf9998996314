package handler_test

import (
	"context"
	"testing"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Signup(t *testing.T) {
	app, s := newTestApp()
	s.auth.SignupFunc = func(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
		if req.Email == "taken@example.com" {
			return nil, domain.NewConflictError("Email already registered")
		}
		return &dto.AuthResponse{
			Success: true, Message: "User created successfully", Token: "jwt",
			User: dto.UserProfile{ID: testUserID, Username: req.Username, Email: req.Email},
		}, nil
	}

	resp, err := app.Test(newJSONRequest("POST", "/signup", dto.SignupRequest{Username: "alice", Email: "a@example.com", Password: "secret123"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var got dto.AuthResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, "jwt", got.Token)
	assert.Equal(t, testUserID, got.User.ID)

	resp, err = app.Test(newJSONRequest("POST", "/signup", dto.SignupRequest{Username: "bob", Email: "taken@example.com", Password: "secret123"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_Signin(t *testing.T) {
	app, s := newTestApp()
	s.auth.SigninFunc = func(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
		return nil, domain.NewError(domain.CodeInvalidCredentials, "Invalid email or password", nil)
	}

	resp, err := app.Test(newJSONRequest("POST", "/signin", dto.SigninRequest{Email: "a@example.com", Password: "wrong"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	app, s := newTestApp()
	s.auth.ChangePasswordFunc = func(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
		assert.Equal(t, testUserID, userID)
		return nil
	}

	body := dto.ChangePasswordRequest{UserID: testUserID, CurrentPassword: "secret123", NewPassword: "newsecret"}

	resp, err := app.Test(newJSONRequest("PUT", "/password/change", body), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := newJSONRequest("PUT", "/password/change", body)
	req.Header.Set("Authorization", "Bearer token-"+testUserID)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.MessageResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, "Password changed successfully", got.Message)
}
