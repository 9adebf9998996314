package service

import (
	"context"
	"errors"
	"time"

	"design-dojo/internal/cache"
	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	sourceRedis       = "redis"
	sourceDatabase    = "database"
	sourceSubmissions = "submissions"
	sourceGenerated   = "generated"
	sourceDegraded    = "degraded"
	sourceMiss        = "miss"
)

// SolutionService resolves optimal solutions through Redis, the
// optimal_solutions table and the legacy submissions scan, generating on a miss.
type SolutionService interface {
	// Resolve returns a stored solution or generates one. Degraded solutions
	// are returned but never stored.
	Resolve(ctx context.Context, question *domain.Question) (*domain.OptimalSolution, bool, error)
	// Lookup returns a stored solution without generating. ok is false on a miss.
	Lookup(ctx context.Context, questionID string) (solution string, ok bool)
	// Generate backs GET /api/llm-solution. refresh forces a new generation.
	Generate(ctx context.Context, questionID string, refresh bool) (*dto.SolutionResponse, error)
}

type solutionServiceImpl struct {
	catalog        domain.QuestionCatalog
	solutionRepo   domain.SolutionRepository
	submissionRepo domain.SubmissionRepository
	evaluator      domain.CodeEvaluator
	cache          domain.Cache
	ttl            time.Duration
	group          singleflight.Group
}

// NewSolutionService creates a new SolutionService. cache may be nil when Redis is disabled.
func NewSolutionService(
	catalog domain.QuestionCatalog,
	solutionRepo domain.SolutionRepository,
	submissionRepo domain.SubmissionRepository,
	evaluator domain.CodeEvaluator,
	cache domain.Cache,
	ttl time.Duration,
) SolutionService {
	return &solutionServiceImpl{
		catalog:        catalog,
		solutionRepo:   solutionRepo,
		submissionRepo: submissionRepo,
		evaluator:      evaluator,
		cache:          cache,
		ttl:            ttl,
	}
}

func (s *solutionServiceImpl) Generate(ctx context.Context, questionID string, refresh bool) (*dto.SolutionResponse, error) {
	question, ok := s.catalog.GetQuestionByID(questionID)
	if !ok {
		return nil, domain.NewQuestionNotFoundError(questionID)
	}

	var (
		solution  *domain.OptimalSolution
		fromCache bool
		err       error
	)
	if refresh {
		solution = s.generate(ctx, question)
	} else {
		solution, fromCache, err = s.Resolve(ctx, question)
		if err != nil {
			return nil, err
		}
	}

	return &dto.SolutionResponse{
		QuestionID:    question.QuestionID,
		Solution:      solution.Code,
		DesignPattern: question.DesignPattern,
		FromCache:     fromCache,
	}, nil
}

func (s *solutionServiceImpl) Resolve(ctx context.Context, question *domain.Question) (*domain.OptimalSolution, bool, error) {
	if question == nil {
		return nil, false, domain.NewInvalidInputError("question is required")
	}
	if code, ok := s.Lookup(ctx, question.QuestionID); ok {
		return &domain.OptimalSolution{
			QuestionID:    question.QuestionID,
			DesignPattern: question.DesignPattern,
			Code:          code,
		}, true, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return s.generate(ctx, question), false, nil
}

func (s *solutionServiceImpl) Lookup(ctx context.Context, questionID string) (string, bool) {
	l := logger.Get().With(zap.String("question_id", questionID))
	key := cache.OptimalSolutionKey(questionID)

	if s.cache != nil {
		code, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && code != "":
			metrics.SolutionCacheLookups.WithLabelValues(sourceRedis).Inc()
			return code, true
		case err != nil && !errors.Is(err, domain.ErrCacheMiss):
			l.Warn("Solution cache read failed", zap.Error(err))
		}
	}

	stored, err := s.solutionRepo.Get(ctx, questionID)
	if err != nil {
		l.Warn("Failed to read stored solution", zap.Error(err))
	}
	if stored != nil && stored.Code != "" {
		metrics.SolutionCacheLookups.WithLabelValues(sourceDatabase).Inc()
		s.warmCache(ctx, questionID, stored.Code)
		return stored.Code, true
	}

	legacy, err := s.submissionRepo.FindCachedSolution(ctx, questionID)
	if err != nil {
		l.Warn("Failed to scan submissions for a solution", zap.Error(err))
	}
	if legacy != "" {
		metrics.SolutionCacheLookups.WithLabelValues(sourceSubmissions).Inc()
		s.persist(ctx, &domain.OptimalSolution{QuestionID: questionID, Code: legacy})
		return legacy, true
	}

	metrics.SolutionCacheLookups.WithLabelValues(sourceMiss).Inc()
	return "", false
}

// generate collapses concurrent generations for the same question.
func (s *solutionServiceImpl) generate(ctx context.Context, question *domain.Question) *domain.OptimalSolution {
	v, _, shared := s.group.Do(question.QuestionID, func() (interface{}, error) {
		solution := s.evaluator.GenerateOptimalSolution(ctx, question.Context, question.DesignPattern)
		solution.QuestionID = question.QuestionID
		if solution.DesignPattern == "" {
			solution.DesignPattern = question.DesignPattern
		}
		if solution.Degraded {
			metrics.SolutionCacheLookups.WithLabelValues(sourceDegraded).Inc()
			return &solution, nil
		}
		metrics.SolutionCacheLookups.WithLabelValues(sourceGenerated).Inc()
		s.persist(ctx, &solution)
		return &solution, nil
	})
	if shared {
		logger.Get().Debug("Shared in-flight solution generation", zap.String("question_id", question.QuestionID))
	}
	solution := *v.(*domain.OptimalSolution)
	return &solution
}

func (s *solutionServiceImpl) persist(ctx context.Context, solution *domain.OptimalSolution) {
	if solution.Degraded || solution.Code == "" {
		return
	}
	if solution.DesignPattern == "" {
		if q, ok := s.catalog.GetQuestionByID(solution.QuestionID); ok {
			solution.DesignPattern = q.DesignPattern
		}
	}
	if err := s.solutionRepo.Upsert(ctx, solution); err != nil {
		logger.Get().Warn("Failed to store optimal solution",
			zap.String("question_id", solution.QuestionID), zap.Error(err))
	}
	s.warmCache(ctx, solution.QuestionID, solution.Code)
}

func (s *solutionServiceImpl) warmCache(ctx context.Context, questionID, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.OptimalSolutionKey(questionID), code, s.ttl); err != nil {
		logger.Get().Warn("Failed to cache optimal solution",
			zap.String("question_id", questionID), zap.Error(err))
	}
}
