package handler_test

import (
	"context"
	"errors"
	"time"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/handler"
	"design-dojo/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

// MockAuthService
type MockAuthService struct {
	SignupFunc         func(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	SigninFunc         func(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	ChangePasswordFunc func(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

func (m *MockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	panic("MockAuthService.SignupFunc not implemented")
}
func (m *MockAuthService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	if m.SigninFunc != nil {
		return m.SigninFunc(ctx, req)
	}
	panic("MockAuthService.SigninFunc not implemented")
}
func (m *MockAuthService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, req)
	}
	panic("MockAuthService.ChangePasswordFunc not implemented")
}
func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

// ValidateJWT accepts "token-<userID>" as an access token for userID.
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	const prefix = "token-"
	if len(tokenString) > len(prefix) && tokenString[:len(prefix)] == prefix {
		return &dto.AuthClaims{UserID: tokenString[len(prefix):], TokenType: "access"}, nil
	}
	return nil, errors.New("invalid token")
}

// MockUserService
type MockUserService struct {
	GetCompletedChallengesFunc func(ctx context.Context, userID string) (*dto.CompletedChallengesResponse, error)
	GetRatingHistoryFunc       func(ctx context.Context, userID string) (*dto.RatingHistoryResponse, error)
	GetDashboardFunc           func(ctx context.Context, userID string) (*dto.DashboardResponse, error)
	GetPublicUserFunc          func(ctx context.Context, userID string) (*dto.PublicUserResponse, error)
	CompleteLessonFunc         func(ctx context.Context, userID string, req *dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error)
	UpdateProfileFunc          func(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

func (m *MockUserService) GetCompletedChallenges(ctx context.Context, userID string) (*dto.CompletedChallengesResponse, error) {
	if m.GetCompletedChallengesFunc != nil {
		return m.GetCompletedChallengesFunc(ctx, userID)
	}
	panic("MockUserService.GetCompletedChallengesFunc not implemented")
}
func (m *MockUserService) GetRatingHistory(ctx context.Context, userID string) (*dto.RatingHistoryResponse, error) {
	if m.GetRatingHistoryFunc != nil {
		return m.GetRatingHistoryFunc(ctx, userID)
	}
	panic("MockUserService.GetRatingHistoryFunc not implemented")
}
func (m *MockUserService) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx, userID)
	}
	panic("MockUserService.GetDashboardFunc not implemented")
}
func (m *MockUserService) GetPublicUser(ctx context.Context, userID string) (*dto.PublicUserResponse, error) {
	if m.GetPublicUserFunc != nil {
		return m.GetPublicUserFunc(ctx, userID)
	}
	panic("MockUserService.GetPublicUserFunc not implemented")
}
func (m *MockUserService) CompleteLesson(ctx context.Context, userID string, req *dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error) {
	if m.CompleteLessonFunc != nil {
		return m.CompleteLessonFunc(ctx, userID, req)
	}
	panic("MockUserService.CompleteLessonFunc not implemented")
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateProfileFunc not implemented")
}

// MockQuestionService
type MockQuestionService struct {
	GetRandomQuestionFunc func(ctx context.Context, topic, userID string, avoidCompleted bool) (*dto.QuestionEnvelope, error)
	GetQuestionByIDFunc   func(ctx context.Context, questionID string) (*dto.QuestionEnvelope, error)
}

func (m *MockQuestionService) GetRandomQuestion(ctx context.Context, topic, userID string, avoidCompleted bool) (*dto.QuestionEnvelope, error) {
	if m.GetRandomQuestionFunc != nil {
		return m.GetRandomQuestionFunc(ctx, topic, userID, avoidCompleted)
	}
	panic("MockQuestionService.GetRandomQuestionFunc not implemented")
}
func (m *MockQuestionService) GetQuestionByID(ctx context.Context, questionID string) (*dto.QuestionEnvelope, error) {
	if m.GetQuestionByIDFunc != nil {
		return m.GetQuestionByIDFunc(ctx, questionID)
	}
	panic("MockQuestionService.GetQuestionByIDFunc not implemented")
}

// MockSubmissionService
type MockSubmissionService struct {
	CreateSubmissionFunc func(ctx context.Context, req *dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error)
	GetSubmissionFunc    func(ctx context.Context, submissionID string) (*dto.SubmissionDetailResponse, error)
}

func (m *MockSubmissionService) CreateSubmission(ctx context.Context, req *dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error) {
	if m.CreateSubmissionFunc != nil {
		return m.CreateSubmissionFunc(ctx, req)
	}
	panic("MockSubmissionService.CreateSubmissionFunc not implemented")
}
func (m *MockSubmissionService) GetSubmission(ctx context.Context, submissionID string) (*dto.SubmissionDetailResponse, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, submissionID)
	}
	panic("MockSubmissionService.GetSubmissionFunc not implemented")
}

// MockSolutionService
type MockSolutionService struct {
	GenerateFunc func(ctx context.Context, questionID string, refresh bool) (*dto.SolutionResponse, error)
}

func (m *MockSolutionService) Resolve(ctx context.Context, question *domain.Question) (*domain.OptimalSolution, bool, error) {
	panic("not implemented in mock")
}
func (m *MockSolutionService) Lookup(ctx context.Context, questionID string) (string, bool) {
	panic("not implemented in mock")
}
func (m *MockSolutionService) Generate(ctx context.Context, questionID string, refresh bool) (*dto.SolutionResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, questionID, refresh)
	}
	panic("MockSolutionService.GenerateFunc not implemented")
}

type testServices struct {
	auth        *MockAuthService
	users       *MockUserService
	questions   *MockQuestionService
	submissions *MockSubmissionService
	solutions   *MockSolutionService
}

func newTestApp() (*fiber.App, *testServices) {
	s := &testServices{
		auth:        &MockAuthService{},
		users:       &MockUserService{},
		questions:   &MockQuestionService{},
		submissions: &MockSubmissionService{},
		solutions:   &MockSolutionService{},
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:       handler.NewAuthHandler(s.auth),
		User:       handler.NewUserHandler(s.users),
		Question:   handler.NewQuestionHandler(s.questions),
		Submission: handler.NewSubmissionHandler(s.submissions),
		Solution:   handler.NewSolutionHandler(s.solutions),
	}, s.auth)
	return app, s
}
