package service

import (
	"context"
	"errors"
	"strings"

	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TotalLessons is the number of lessons counted by the dashboard learning progress.
const TotalLessons = 15

// UserService exposes read projections and updates of a user's learning state.
type UserService interface {
	GetCompletedChallenges(ctx context.Context, userID string) (*dto.CompletedChallengesResponse, error)
	GetRatingHistory(ctx context.Context, userID string) (*dto.RatingHistoryResponse, error)
	GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)
	GetPublicUser(ctx context.Context, userID string) (*dto.PublicUserResponse, error)
	CompleteLesson(ctx context.Context, userID string, req *dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type userServiceImpl struct {
	userRepo  domain.UserRepository
	catalog   domain.QuestionCatalog
	txManager domain.TransactionManager
	validator *validation.Validator
	hashCost  int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo domain.UserRepository, catalog domain.QuestionCatalog, txManager domain.TransactionManager) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		catalog:   catalog,
		txManager: txManager,
		validator: validation.NewValidator(),
		hashCost:  bcrypt.DefaultCost,
	}
}

func (s *userServiceImpl) loadUser(ctx context.Context, userID string, lock bool) (*domain.User, error) {
	if errs := s.validator.ValidateUserID(userID); len(errs) > 0 {
		return nil, errs
	}
	var (
		user *domain.User
		err  error
	)
	if lock {
		user, err = s.userRepo.GetUserForUpdate(ctx, userID)
	} else {
		user, err = s.userRepo.GetUserByID(ctx, userID)
	}
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return user, nil
}

func (s *userServiceImpl) GetCompletedChallenges(ctx context.Context, userID string) (*dto.CompletedChallengesResponse, error) {
	user, err := s.loadUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	topics := make(map[string]dto.TopicProgress)
	for _, topic := range s.catalog.Topics() {
		progress := dto.TopicProgress{
			Name:      topic.Name,
			Questions: make([]dto.TopicQuestionStatus, 0, len(topic.Questions)),
		}
		for _, q := range topic.Questions {
			done := user.HasCompletedChallenge(q.QuestionID)
			progress.Total++
			if done {
				progress.Completed++
			}
			progress.Questions = append(progress.Questions, dto.TopicQuestionStatus{ID: q.QuestionID, Completed: done})
		}
		progress.IsCompleted = progress.Completed == progress.Total
		topics[topic.ID] = progress
	}

	return &dto.CompletedChallengesResponse{
		CompletedChallenges: user.CompletedChallenges,
		Topics:              topics,
		UserRating:          user.Rating,
		Last5Ratings:        user.LastRatings(),
	}, nil
}

func (s *userServiceImpl) GetRatingHistory(ctx context.Context, userID string) (*dto.RatingHistoryResponse, error) {
	user, err := s.loadUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return &dto.RatingHistoryResponse{
		Rating:       user.Rating,
		Last5Ratings: user.RatingHistory,
	}, nil
}

func (s *userServiceImpl) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	user, err := s.loadUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		User: dto.DashboardUser{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			Rating:       user.Rating,
			Last5Ratings: user.RatingHistory,
		},
		Progress: dto.DashboardProgress{
			Learning:   min(100, user.CompletedLessonCount*100/TotalLessons),
			Challenges: min(100, int(user.Rating)),
		},
		RecentActivities: dto.RecentActivities{
			Lessons:     user.RecentLessons,
			Submissions: user.RecentSubmissions,
		},
	}, nil
}

func (s *userServiceImpl) GetPublicUser(ctx context.Context, userID string) (*dto.PublicUserResponse, error) {
	user, err := s.loadUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return &dto.PublicUserResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Rating:               user.Rating,
		CompletedLessonCount: user.CompletedLessonCount,
	}, nil
}

// CompleteLesson is idempotent: a lesson already completed leaves the counter unchanged.
func (s *userServiceImpl) CompleteLesson(ctx context.Context, userID string, req *dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	var resp *dto.CompleteLessonResponse
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.loadUser(txCtx, userID, true)
		if err != nil {
			return err
		}
		if !user.CompleteLesson(req.LessonID) {
			resp = &dto.CompleteLessonResponse{
				Success:              true,
				Message:              "Lesson already completed",
				CompletedLessonCount: user.CompletedLessonCount,
				AlreadyCompleted:     true,
			}
			return nil
		}
		if err := s.userRepo.UpdateLessonState(txCtx, user); err != nil {
			return domain.NewInternalError("Failed to save completed lesson", err)
		}
		resp = &dto.CompleteLessonResponse{
			Success:              true,
			Message:              "Lesson completed successfully",
			CompletedLessonCount: user.CompletedLessonCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Lesson completion recorded",
		zap.String("user_id", userID),
		zap.String("lesson_id", req.LessonID),
		zap.Bool("already_completed", resp.AlreadyCompleted))
	return resp, nil
}

// UpdateProfile applies the non-empty fields of req to the caller's account.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if req.ID != "" && req.ID != userID {
		return nil, domain.NewForbiddenError("Unauthorized access")
	}

	var updated *domain.User
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.loadUser(txCtx, userID, true)
		if err != nil {
			return err
		}

		if req.Username != "" && req.Username != user.Username {
			if err := s.ensureAvailable(txCtx, user.ID, s.userRepo.GetUserByUsername, req.Username, "Username already taken"); err != nil {
				return err
			}
			user.Username = req.Username
		}
		if req.Email != "" && req.Email != user.Email {
			if err := s.ensureAvailable(txCtx, user.ID, s.userRepo.GetUserByEmail, req.Email, "Email already in use"); err != nil {
				return err
			}
			user.Email = req.Email
		}
		if req.Password != "" {
			hash, err := hashPassword(req.Password, s.hashCost)
			if err != nil {
				return domain.NewInternalError("Failed to hash password", err)
			}
			user.PasswordHash = hash
		}

		if err := s.userRepo.UpdateProfile(txCtx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return domain.NewConflictError("Email or username already in use")
			}
			return domain.NewInternalError("Failed to update profile", err)
		}

		if req.LastLesson != "" {
			user.TouchLesson(req.LastLesson)
			if err := s.userRepo.UpdateLessonState(txCtx, user); err != nil {
				return domain.NewInternalError("Failed to update recent lessons", err)
			}
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    toUserProfile(updated),
	}, nil
}

func (s *userServiceImpl) ensureAvailable(
	ctx context.Context,
	selfID string,
	lookup func(context.Context, string) (*domain.User, error),
	value, conflictMsg string,
) error {
	other, err := lookup(ctx, value)
	if err != nil {
		return domain.NewInternalError("Failed to check availability", err)
	}
	if other != nil && other.ID != selfID {
		return domain.NewConflictError(conflictMsg)
	}
	return nil
}
