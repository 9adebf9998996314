package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/metrics"
	"design-dojo/internal/util"
	"design-dojo/internal/validation"

	"go.uber.org/zap"
)

// SubmissionService runs the submission-and-rating pipeline.
type SubmissionService interface {
	CreateSubmission(ctx context.Context, req *dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error)
	GetSubmission(ctx context.Context, submissionID string) (*dto.SubmissionDetailResponse, error)
}

type submissionServiceImpl struct {
	userRepo       domain.UserRepository
	submissionRepo domain.SubmissionRepository
	catalog        domain.QuestionCatalog
	evaluator      domain.CodeEvaluator
	solutions      SolutionService
	validator      *validation.Validator
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	userRepo domain.UserRepository,
	submissionRepo domain.SubmissionRepository,
	catalog domain.QuestionCatalog,
	evaluator domain.CodeEvaluator,
	solutions SolutionService,
) SubmissionService {
	return &submissionServiceImpl{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		catalog:        catalog,
		evaluator:      evaluator,
		solutions:      solutions,
		validator:      validation.NewValidator(),
	}
}

// CreateSubmission evaluates, stores and rates one submission. The submission
// is durable once this returns without error; the rating update is best effort.
func (s *submissionServiceImpl) CreateSubmission(ctx context.Context, req *dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error) {
	// The id exists before anything is written.
	submissionID := util.NewSubmissionID()
	l := logger.Get().With(zap.String("submission_id", submissionID))

	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.ValidateUserID(req.UserID); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(req.UserID)
	}

	question, ok := s.catalog.GetQuestionByID(req.QuestionID)
	if !ok {
		return nil, domain.NewQuestionNotFoundError(req.QuestionID)
	}

	evaluation := s.evaluate(ctx, req.LLMResponse, question)
	l.Info("Submission evaluated",
		zap.String("question_id", question.QuestionID),
		zap.Int("score", evaluation.Score),
		zap.Bool("degraded", evaluation.Degraded))

	submission := &domain.Submission{
		SubmissionID:    submissionID,
		UserID:          user.ID,
		QuestionID:      question.QuestionID,
		Username:        req.Username,
		Code:            domain.TruncateCode(req.LLMResponse),
		Score:           evaluation.Score,
		EvaluationData:  evaluation.Raw,
		OptimalSolution: s.optimalSolution(ctx, question),
		CreatedAt:       time.Now(),
	}

	if err := s.store(ctx, submission); err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		l.Error("Failed to store submission", zap.Error(err))
		return nil, err
	}

	change := domain.ApplySubmissionResult(user, evaluation.Score, question.QuestionID, submissionID)
	if err := s.userRepo.UpdateRatingState(ctx, user); err != nil {
		metrics.RatingUpdateFailures.Inc()
		l.Error("Failed to update user rating after storing submission",
			zap.String("user_id", user.ID), zap.Error(err))
	}

	metrics.Submissions.WithLabelValues("created").Inc()
	l.Info("Submission created",
		zap.String("user_id", user.ID),
		zap.Int("rating_change", change.Change),
		zap.Float64("new_rating", change.NewRating))

	return &dto.CreateSubmissionResponse{
		Message:      "Submission created successfully",
		SubmissionID: submissionID,
		Score:        evaluation.Score,
		RatingChange: change.Change,
		OldRating:    change.OldRating,
		NewRating:    change.NewRating,
	}, nil
}

// evaluate shields the pipeline from an evaluator that panics.
func (s *submissionServiceImpl) evaluate(ctx context.Context, code string, question *domain.Question) (result domain.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("Evaluator panicked", zap.Any("panic", r), zap.String("question_id", question.QuestionID))
			metrics.EvaluationFallbacks.WithLabelValues("evaluate", "pipeline_panic").Inc()
			result = domain.NewEvaluationFailure(fmt.Errorf("evaluation failed: %v", r))
		}
	}()
	result = s.evaluator.Evaluate(ctx, code, question.Context, question.DesignPattern)
	if result.Score < 0 || result.Score > 100 {
		result.Score = max(0, min(100, result.Score))
	}
	return result
}

// optimalSolution never fails the submission; any error yields "".
func (s *submissionServiceImpl) optimalSolution(ctx context.Context, question *domain.Question) (code string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("Optimal solution lookup panicked", zap.Any("panic", r))
			code = ""
		}
	}()
	solution, _, err := s.solutions.Resolve(ctx, question)
	if err != nil {
		logger.Get().Warn("Proceeding without optimal solution",
			zap.String("question_id", question.QuestionID), zap.Error(err))
		return ""
	}
	return solution.Code
}

// store inserts the submission, retrying once through the direct path on a
// duplicate key.
func (s *submissionServiceImpl) store(ctx context.Context, submission *domain.Submission) error {
	err := s.submissionRepo.Create(ctx, submission)
	if err == nil {
		return nil
	}

	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	if !errors.Is(err, domain.ErrDuplicateKey) {
		return domain.NewPersistenceError("Failed to save submission", err)
	}

	logger.Get().Warn("Duplicate key on submission insert, retrying with direct insert",
		zap.String("submission_id", submission.SubmissionID), zap.Error(err))
	metrics.Submissions.WithLabelValues("retried").Inc()
	if err := s.submissionRepo.CreateDirect(ctx, submission); err != nil {
		return domain.NewPersistenceError("Failed to save submission after retry", err)
	}
	return nil
}

func (s *submissionServiceImpl) GetSubmission(ctx context.Context, submissionID string) (*dto.SubmissionDetailResponse, error) {
	if submissionID == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("submission_id")}
	}

	submission, err := s.submissionRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load submission", err)
	}
	if submission == nil {
		return nil, domain.NewSubmissionNotFoundError(submissionID)
	}

	var currentRating float64
	user, err := s.userRepo.GetUserByID(ctx, submission.UserID)
	switch {
	case err != nil:
		return nil, domain.NewInternalError("Failed to load submission owner", err)
	case user != nil:
		currentRating = user.Rating
	}

	if submission.OptimalSolution == "" {
		if code, ok := s.solutions.Lookup(ctx, submission.QuestionID); ok {
			submission.OptimalSolution = code
			if err := s.submissionRepo.UpdateOptimalSolution(ctx, submissionID, code); err != nil {
				logger.Get().Warn("Failed to backfill optimal solution", zap.String("submission_id", submissionID), zap.Error(err))
			}
		}
	}

	return &dto.SubmissionDetailResponse{
		SubmissionID:    submission.SubmissionID,
		UserID:          submission.UserID,
		QuestionID:      submission.QuestionID,
		Username:        submission.Username,
		Score:           submission.Score,
		LLMResponse:     submission.Code,
		EvaluationData:  submission.EvaluationData,
		OptimalSolution: submission.OptimalSolution,
		CreatedAt:       submission.CreatedAt,
		CurrentRating:   currentRating,
	}, nil
}
