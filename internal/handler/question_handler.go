package handler

import (
	"design-dojo/internal/middleware"
	"design-dojo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(questions service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// GetRandomQuestion godoc
// @Summary Get a random question
// @Description Picks a random question for the topic, skipping questions the caller already completed
// @Tags questions
// @Produce json
// @Param topic path string true "Design pattern slug, or this-week*/last-week* for the whole catalog"
// @Param avoid_completed query bool false "Skip completed questions (default true)"
// @Param id header string false "Caller user ID when no Bearer token is sent"
// @Success 200 {object} dto.QuestionEnvelope
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/question/{topic} [get]
func (h *QuestionHandler) GetRandomQuestion(c *fiber.Ctx) error {
	topic, _ := c.Locals(middleware.ValidatedTopicKey).(string)
	if topic == "" {
		topic = c.Params("topic")
	}
	resp, err := h.questions.GetRandomQuestion(c.UserContext(), topic,
		middleware.UserIDFromCtx(c), c.QueryBool("avoid_completed", true))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestionByID godoc
// @Summary Get a question by ID
// @Tags questions
// @Produce json
// @Param question_id path string true "Question ID"
// @Success 200 {object} dto.QuestionEnvelope
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/question-by-id/{question_id} [get]
func (h *QuestionHandler) GetQuestionByID(c *fiber.Ctx) error {
	resp, err := h.questions.GetQuestionByID(c.UserContext(), c.Params("question_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
