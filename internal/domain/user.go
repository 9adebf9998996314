package domain

import (
	"context"
	"time"
)

const (
	// RatingHistoryLimit is the number of most recent ratings kept per user.
	RatingHistoryLimit = 5
	// RecentLessonsLimit bounds User.RecentLessons.
	RecentLessonsLimit = 3
	// RecentSubmissionsLimit bounds User.RecentSubmissions.
	RecentSubmissionsLimit = 3
)

// User is a learner account together with its rating and completion records.
// Every list field is non-nil once loaded through NewUser or the repository.
type User struct {
	ID                   string
	Username             string
	Email                string
	PasswordHash         string
	Rating               float64
	RatingHistory        []float64
	CompletedLessons     []string
	CompletedLessonCount int
	CompletedChallenges  []string
	RecentLessons        []string
	RecentSubmissions    []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewUser creates a User with every field at its default.
func NewUser(id, username, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:                  id,
		Username:            username,
		Email:               email,
		PasswordHash:        passwordHash,
		Rating:              0,
		RatingHistory:       []float64{},
		CompletedLessons:    []string{},
		CompletedChallenges: []string{},
		RecentLessons:       []string{},
		RecentSubmissions:   []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Normalize replaces nil lists with empty ones and floors the rating at zero.
func (u *User) Normalize() {
	if u.RatingHistory == nil {
		u.RatingHistory = []float64{}
	}
	if u.CompletedLessons == nil {
		u.CompletedLessons = []string{}
	}
	if u.CompletedChallenges == nil {
		u.CompletedChallenges = []string{}
	}
	if u.RecentLessons == nil {
		u.RecentLessons = []string{}
	}
	if u.RecentSubmissions == nil {
		u.RecentSubmissions = []string{}
	}
	if u.Rating < 0 {
		u.Rating = 0
	}
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.ID == "" {
		errs = append(errs, NewMissingFieldError("id"))
	}
	if u.Username == "" {
		errs = append(errs, NewMissingFieldError("username"))
	}
	if u.PasswordHash == "" {
		errs = append(errs, NewMissingFieldError("password"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HasCompletedChallenge reports whether questionID is in the completed set.
func (u *User) HasCompletedChallenge(questionID string) bool {
	return contains(u.CompletedChallenges, questionID)
}

// HasCompletedLesson reports whether lessonID is in the completed set.
func (u *User) HasCompletedLesson(lessonID string) bool {
	return contains(u.CompletedLessons, lessonID)
}

// CompleteLesson adds lessonID to the completed set and bumps the counter.
// It returns false when the lesson was already completed.
func (u *User) CompleteLesson(lessonID string) bool {
	if u.HasCompletedLesson(lessonID) {
		return false
	}
	u.CompletedLessons = append(u.CompletedLessons, lessonID)
	u.CompletedLessonCount++
	return true
}

// TouchLesson records lessonID as the most recently visited lesson.
// A lesson already in the window moves to the newest position.
func (u *User) TouchLesson(lessonID string) {
	filtered := make([]string, 0, len(u.RecentLessons)+1)
	for _, l := range u.RecentLessons {
		if l != lessonID {
			filtered = append(filtered, l)
		}
	}
	u.RecentLessons = PushBounded(filtered, lessonID, RecentLessonsLimit)
}

// LastRatings returns the rating history, or the current rating alone when
// no history has been recorded yet.
func (u *User) LastRatings() []float64 {
	if len(u.RatingHistory) == 0 {
		return []float64{u.Rating}
	}
	out := make([]float64, len(u.RatingHistory))
	copy(out, u.RatingHistory)
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	// GetUserForUpdate locks the row until the surrounding transaction ends.
	GetUserForUpdate(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateRatingState(ctx context.Context, user *User) error
	UpdateLessonState(ctx context.Context, user *User) error
}
