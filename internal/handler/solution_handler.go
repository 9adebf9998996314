package handler

import (
	"design-dojo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SolutionHandler serves generated reference solutions.
type SolutionHandler struct {
	solutions service.SolutionService
}

func NewSolutionHandler(solutions service.SolutionService) *SolutionHandler {
	return &SolutionHandler{solutions: solutions}
}

// GetSolution godoc
// @Summary Get the optimal solution for a question
// @Description Returns the cached reference solution, generating it on a miss
// @Tags solutions
// @Produce json
// @Param question_id path string true "Question ID"
// @Param refresh query bool false "Force a new generation"
// @Success 200 {object} dto.SolutionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/llm-solution/{question_id} [get]
func (h *SolutionHandler) GetSolution(c *fiber.Ctx) error {
	resp, err := h.solutions.Generate(c.UserContext(), c.Params("question_id"), c.QueryBool("refresh", false))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
