package handler

import (
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCompletedChallenges godoc
// @Summary Get completed challenges
// @Description Completed question ids with a per-topic rollup, the current rating and the last five ratings
// @Tags users
// @Produce json
// @Param id header string false "Caller user ID when no Bearer token is sent"
// @Success 200 {object} dto.CompletedChallengesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/user/completed-challenges [get]
func (h *UserHandler) GetCompletedChallenges(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resp, err := h.userService.GetCompletedChallenges(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetRatingHistory godoc
// @Summary Get rating history
// @Tags users
// @Produce json
// @Param id header string false "Caller user ID when no Bearer token is sent"
// @Success 200 {object} dto.RatingHistoryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/user/rating-history [get]
func (h *UserHandler) GetRatingHistory(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resp, err := h.userService.GetRatingHistory(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetDashboard godoc
// @Summary Get the dashboard
// @Description Learning and challenge progress plus recent activity
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /dashboard [get]
func (h *UserHandler) GetDashboard(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resp, err := h.userService.GetDashboard(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetPublicUser godoc
// @Summary Get a public user profile
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.PublicUserResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /user/{user_id} [get]
func (h *UserHandler) GetPublicUser(c *fiber.Ctx) error {
	resp, err := h.userService.GetPublicUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /profile/update [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.userService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	logger.Get().Info("Profile updated", zap.String("user_id", userID))
	return c.JSON(resp)
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Description Idempotent; repeated calls report alreadyCompleted
// @Tags learning
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CompleteLessonRequest true "Lesson"
// @Success 200 {object} dto.CompleteLessonResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /learning/complete-lesson [post]
func (h *UserHandler) CompleteLesson(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.CompleteLessonRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.userService.CompleteLesson(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
