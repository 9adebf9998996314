package handler

import (
	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/middleware"
	"design-dojo/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SubmissionHandler handles submission-related HTTP requests
type SubmissionHandler struct {
	submissions service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler instance
func NewSubmissionHandler(submissions service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// CreateSubmission godoc
// @Summary Submit code for evaluation
// @Description Scores the code with the LLM evaluator, stores the submission and updates the user's rating
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body dto.CreateSubmissionRequest true "Submission"
// @Success 201 {object} dto.CreateSubmissionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Token user differs from user_id"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/submission/create [post]
func (h *SubmissionHandler) CreateSubmission(c *fiber.Ctx) error {
	var req dto.CreateSubmissionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if tokenUser := middleware.UserIDFromCtx(c); tokenUser != "" && tokenUser != req.UserID {
		logger.Get().Warn("Submission user does not match token",
			zap.String("token_user_id", tokenUser),
			zap.String("body_user_id", req.UserID))
		return domain.NewForbiddenError("Unauthorized access")
	}

	resp, err := h.submissions.CreateSubmission(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSubmission godoc
// @Summary Get a submission
// @Description Returns a stored submission together with the owner's current rating
// @Tags submissions
// @Produce json
// @Param submission_id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/submission/{submission_id} [get]
func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	resp, err := h.submissions.GetSubmission(c.UserContext(), c.Params("submission_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
