package handler

import (
	"design-dojo/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Question   *QuestionHandler
	Submission *SubmissionHandler
	Solution   *SolutionHandler
}

// RegisterRoutes mounts the API on app.
func RegisterRoutes(app fiber.Router, h Handlers, tokens middleware.TokenValidator) {
	protected := middleware.Protected(tokens)
	identify := middleware.Identify(tokens)
	vm := middleware.NewValidationMiddleware()

	// Accounts
	app.Post("/signup", h.Auth.Signup)
	app.Post("/signin", h.Auth.Signin)
	app.Put("/password/change", protected, h.Auth.ChangePassword)
	app.Get("/user/:user_id", vm.ValidateUserIDParam(), h.User.GetPublicUser)
	app.Put("/profile/update", protected, h.User.UpdateProfile)
	app.Get("/dashboard", protected, h.User.GetDashboard)
	app.Post("/learning/complete-lesson", protected, h.User.CompleteLesson)

	api := app.Group("/api")

	api.Post("/submission/create", middleware.OptionalAuth(tokens), h.Submission.CreateSubmission)
	api.Get("/submission/:submission_id", h.Submission.GetSubmission)
	api.Get("/llm-solution/:question_id", h.Solution.GetSolution)

	api.Get("/question/:topic", identify, vm.ValidateTopic(), h.Question.GetRandomQuestion)
	api.Get("/question-by-id/:question_id", h.Question.GetQuestionByID)

	userGroup := api.Group("/user", identify)
	userGroup.Get("/completed-challenges", h.User.GetCompletedChallenges)
	userGroup.Get("/rating-history", h.User.GetRatingHistory)
}
