package service

import (
	"context"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) getUser(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.getUser(m.Called(ctx, userID))
}

func (m *MockUserRepository) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return m.getUser(m.Called(ctx, userID))
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getUser(m.Called(ctx, email))
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getUser(m.Called(ctx, username))
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRatingState(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLessonState(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- MockSubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CreateDirect(ctx context.Context, s *domain.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) FindCachedSolution(ctx context.Context, questionID string) (string, error) {
	args := m.Called(ctx, questionID)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateOptimalSolution(ctx context.Context, submissionID, solution string) error {
	args := m.Called(ctx, submissionID, solution)
	return args.Error(0)
}

// --- MockSolutionRepository ---
type MockSolutionRepository struct {
	mock.Mock
}

func (m *MockSolutionRepository) Get(ctx context.Context, questionID string) (*domain.OptimalSolution, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OptimalSolution), args.Error(1)
}

func (m *MockSolutionRepository) Upsert(ctx context.Context, solution *domain.OptimalSolution) error {
	args := m.Called(ctx, solution)
	return args.Error(0)
}

// --- MockCodeEvaluator ---
type MockCodeEvaluator struct {
	mock.Mock
}

func (m *MockCodeEvaluator) Evaluate(ctx context.Context, code, problemContext, designPattern string) domain.EvaluationResult {
	args := m.Called(ctx, code, problemContext, designPattern)
	return args.Get(0).(domain.EvaluationResult)
}

func (m *MockCodeEvaluator) GenerateOptimalSolution(ctx context.Context, problemContext, designPattern string) domain.OptimalSolution {
	args := m.Called(ctx, problemContext, designPattern)
	return args.Get(0).(domain.OptimalSolution)
}

// --- MockSolutionService ---
type MockSolutionService struct {
	mock.Mock
}

func (m *MockSolutionService) Resolve(ctx context.Context, question *domain.Question) (*domain.OptimalSolution, bool, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.OptimalSolution), args.Bool(1), args.Error(2)
}

func (m *MockSolutionService) Lookup(ctx context.Context, questionID string) (string, bool) {
	args := m.Called(ctx, questionID)
	return args.String(0), args.Bool(1)
}

func (m *MockSolutionService) Generate(ctx context.Context, questionID string, refresh bool) (*dto.SolutionResponse, error) {
	args := m.Called(ctx, questionID, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SolutionResponse), args.Error(1)
}

// --- MockTransactionManager ---
// MockTransactionManager runs fn inline with the caller's context.
type MockTransactionManager struct{}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
