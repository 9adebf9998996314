package handler

import (
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Email or username taken"
// @Router /signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return err
	}
	logger.Get().Info("User signed up", zap.String("user_id", resp.User.ID))
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Signin godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid email or password"
// @Router /signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Signin(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse "Current password is incorrect"
// @Failure 403 {object} middleware.ErrorResponse
// @Router /password/change [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.UserContext(), userID, &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Password changed successfully"})
}
