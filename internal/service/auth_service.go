package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"design-dojo/internal/config"
	"design-dojo/internal/domain"
	"design-dojo/internal/dto"
	"design-dojo/internal/logger"
	"design-dojo/internal/util"
	"design-dojo/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	jwtCfg    config.JWTConfig
	validator *validation.Validator
	hashCost  int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, jwtCfg config.JWTConfig) (AuthService, error) {
	if jwtCfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if jwtCfg.AccessTokenTTL <= 0 {
		jwtCfg.AccessTokenTTL = 24 * time.Hour
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtCfg:    jwtCfg,
		validator: validation.NewValidator(),
		hashCost:  bcrypt.DefaultCost,
	}, nil
}

func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check email", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("Email already registered")
	}
	existing, err = s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check username", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("Username already taken")
	}

	hash, err := hashPassword(req.Password, s.hashCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	user := domain.NewUser(util.NewULID(), req.Username, req.Email, hash)
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewConflictError("Email or username already registered")
		}
		return nil, domain.NewInternalError("Failed to create user", err)
	}
	logger.Get().Info("User signed up", zap.String("userID", user.ID), zap.String("username", user.Username))

	token, err := s.CreateJWT(ctx, user, s.jwtCfg.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	return &dto.AuthResponse{
		Success: true,
		Message: "User created successfully",
		Token:   token,
		User:    toUserProfile(user),
	}, nil
}

func (s *authServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil || !checkPassword(user.PasswordHash, req.Password) {
		return nil, domain.NewError(domain.CodeInvalidCredentials, "Invalid email or password", nil)
	}

	token, err := s.CreateJWT(ctx, user, s.jwtCfg.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	logger.Get().Info("User signed in", zap.String("userID", user.ID))
	return &dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    toUserProfile(user),
	}, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}
	if req.UserID != userID {
		return domain.NewForbiddenError("Unauthorized access")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return domain.NewUserNotFoundError(userID)
	}
	if !checkPassword(user.PasswordHash, req.CurrentPassword) {
		return domain.NewError(domain.CodeInvalidCredentials, "Current password is incorrect", nil)
	}

	hash, err := hashPassword(req.NewPassword, s.hashCost)
	if err != nil {
		return domain.NewInternalError("Failed to hash password", err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return domain.NewInternalError("Failed to update password", err)
	}
	return nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		snippet := tokenString[:min(len(tokenString), 20)] + "..."
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", snippet))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func toUserProfile(u *domain.User) dto.UserProfile {
	u.Normalize()
	return dto.UserProfile{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username,
		Rating:               u.Rating,
		Last5Ratings:         u.RatingHistory,
		Last3Lessons:         u.RecentLessons,
		CompletedLessonCount: u.CompletedLessonCount,
		Last3Submissions:     u.RecentSubmissions,
	}
}
