package service

import (
	"context"
	"math/rand"
	"strings"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/validation"

	"go.uber.org/zap"
)

// QuestionService serves questions from the catalog.
type QuestionService interface {
	// GetRandomQuestion picks a question for topic. userID may be empty.
	GetRandomQuestion(ctx context.Context, topic, userID string, avoidCompleted bool) (*dto.QuestionEnvelope, error)
	GetQuestionByID(ctx context.Context, questionID string) (*dto.QuestionEnvelope, error)
}

type questionServiceImpl struct {
	catalog   domain.QuestionCatalog
	userRepo  domain.UserRepository
	validator *validation.Validator
	pick      func(n int) int
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(catalog domain.QuestionCatalog, userRepo domain.UserRepository) QuestionService {
	return &questionServiceImpl{
		catalog:   catalog,
		userRepo:  userRepo,
		validator: validation.NewValidator(),
		pick:      rand.Intn,
	}
}

// isWeeklyTopic reports whether topic is a weekly challenge drawn from every question.
func isWeeklyTopic(topic string) bool {
	return strings.HasPrefix(topic, "this-week") || strings.HasPrefix(topic, "last-week")
}

func (s *questionServiceImpl) GetRandomQuestion(ctx context.Context, topic, userID string, avoidCompleted bool) (*dto.QuestionEnvelope, error) {
	if errs := s.validator.ValidateTopic(topic); len(errs) > 0 {
		return nil, errs
	}

	var user *domain.User
	if userID != "" {
		if errs := s.validator.ValidateUserID(userID); len(errs) > 0 {
			return nil, errs
		}
		u, err := s.userRepo.GetUserByID(ctx, userID)
		switch {
		case err != nil:
			// Serve an unfiltered question rather than fail.
			logger.Get().Warn("Failed to load user for question filtering", zap.String("user_id", userID), zap.Error(err))
		case u == nil:
			return nil, domain.NewUserNotFoundError(userID)
		default:
			user = u
		}
	}

	weekly := isWeeklyTopic(topic)
	var candidates []domain.Question
	if weekly {
		candidates = s.catalog.All()
	} else {
		candidates = s.catalog.GetQuestionsByTopic(topic)
	}

	if avoidCompleted && !weekly && user != nil {
		open := make([]domain.Question, 0, len(candidates))
		for _, q := range candidates {
			if !user.HasCompletedChallenge(q.QuestionID) {
				open = append(open, q)
			}
		}
		// Everything completed: fall back to the whole topic.
		if len(open) > 0 {
			candidates = open
		}
	}

	if len(candidates) == 0 {
		return nil, domain.NewNotFoundError("No questions found for topic: "+topic).WithContext("topic", topic)
	}

	selected := candidates[s.pick(len(candidates))]
	return &dto.QuestionEnvelope{Question: toQuestionResponse(&selected)}, nil
}

func (s *questionServiceImpl) GetQuestionByID(ctx context.Context, questionID string) (*dto.QuestionEnvelope, error) {
	if strings.TrimSpace(questionID) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("question_id")}
	}
	q, ok := s.catalog.GetQuestionByID(questionID)
	if !ok {
		return nil, domain.NewQuestionNotFoundError(questionID)
	}
	return &dto.QuestionEnvelope{Question: toQuestionResponse(q)}, nil
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		QuestionID:    q.QuestionID,
		DesignPattern: q.DesignPattern,
		Title:         q.Title,
		Context:       q.Context,
	}
}
