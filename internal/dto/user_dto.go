package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access"
	jwt.RegisteredClaims
}

// SignupRequest represents the request body for creating an account.
// @Description Request body for account creation
type SignupRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// SigninRequest represents the request body for signing in.
// @Description Request body for signing in with email and password
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserProfile is the user projection returned by the account endpoints.
type UserProfile struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	Username             string    `json:"username"`
	Rating               float64   `json:"rating"`
	Last5Ratings         []float64 `json:"last_5_ratings"`
	Last3Lessons         []string  `json:"last_3_lessons"`
	CompletedLessonCount int       `json:"completed_lesson_count"`
	Last3Submissions     []string  `json:"last_3_submissions"`
}

// AuthResponse is returned by signup and signin.
// @Description Authentication result with an access token
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// PublicUserResponse is the public view of another user.
type PublicUserResponse struct {
	ID                   string  `json:"id"`
	Username             string  `json:"username"`
	Rating               float64 `json:"rating"`
	CompletedLessonCount int     `json:"completed_lesson_count"`
}

// UpdateProfileRequest represents a partial profile update. Empty fields are left unchanged.
// @Description Request body for updating the current user's profile
type UpdateProfileRequest struct {
	ID         string `json:"id,omitempty"`
	Username   string `json:"username,omitempty" validate:"omitempty,notblank,max=100"`
	Email      string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	LastLesson string `json:"last_lesson,omitempty" validate:"omitempty,max=100"`
}

// ProfileResponse is returned after a profile update.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
}

// ChangePasswordRequest represents the request body for changing a password.
// @Description Request body for changing the current user's password
type ChangePasswordRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// CompleteLessonRequest marks a lesson as completed.
// @Description Request body for completing a lesson
type CompleteLessonRequest struct {
	LessonID string `json:"lesson_id" validate:"required,notblank,max=100"`
}

// CompleteLessonResponse reports the lesson counter after completion.
type CompleteLessonResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	CompletedLessonCount int    `json:"completed_lesson_count"`
	AlreadyCompleted     bool   `json:"alreadyCompleted"`
}

// DashboardUser is the user block of the dashboard.
type DashboardUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Rating       float64   `json:"rating"`
	Last5Ratings []float64 `json:"last_5_ratings"`
}

// DashboardProgress holds percentages in [0,100].
type DashboardProgress struct {
	Learning   int `json:"learning"`
	Challenges int `json:"challenges"`
}

// RecentActivities lists the most recent lessons and submissions.
type RecentActivities struct {
	Lessons     []string `json:"lessons"`
	Submissions []string `json:"submissions"`
}

// DashboardResponse is the learner overview.
type DashboardResponse struct {
	User             DashboardUser     `json:"user"`
	Progress         DashboardProgress `json:"progress"`
	RecentActivities RecentActivities  `json:"recent_activities"`
}

// RatingHistoryResponse holds the current rating and the rolling history.
type RatingHistoryResponse struct {
	Rating       float64   `json:"rating"`
	Last5Ratings []float64 `json:"last_5_ratings"`
}

// TopicQuestionStatus is one question of a topic rollup.
type TopicQuestionStatus struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// TopicProgress summarizes completion for one topic.
type TopicProgress struct {
	Name        string                `json:"name"`
	Total       int                   `json:"total"`
	Completed   int                   `json:"completed"`
	Questions   []TopicQuestionStatus `json:"questions"`
	IsCompleted bool                  `json:"isCompleted"`
}

// CompletedChallengesResponse lists completed questions with a per-topic rollup.
type CompletedChallengesResponse struct {
	CompletedChallenges []string                 `json:"completed_challenges"`
	Topics              map[string]TopicProgress `json:"topics"`
	UserRating          float64                  `json:"user_rating"`
	Last5Ratings        []float64                `json:"last_5_ratings"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
