package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"design-dojo/internal/database"
	"design-dojo/internal/domain"
	"design-dojo/internal/repository/models"
	"design-dojo/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, username, email, password_hash, rating, rating_history,
	completed_lessons, completed_lesson_count, completed_challenges,
	recent_lessons, recent_submissions, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of sqlxUserRepository.
func NewUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                util.NullStringToString(m.Email),
		PasswordHash:         m.PasswordHash,
		Rating:               m.Rating,
		RatingHistory:        []float64(m.RatingHistory),
		CompletedLessons:     []string(m.CompletedLessons),
		CompletedLessonCount: m.CompletedLessonCount,
		CompletedChallenges:  []string(m.CompletedChallenges),
		RecentLessons:        []string(m.RecentLessons),
		RecentSubmissions:    []string(m.RecentSubmissions),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	u.Normalize()
	return u
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                util.StringToNullString(u.Email),
		PasswordHash:         u.PasswordHash,
		Rating:               u.Rating,
		RatingHistory:        models.FloatSlice(u.RatingHistory),
		CompletedLessons:     models.StringSlice(u.CompletedLessons),
		CompletedLessonCount: u.CompletedLessonCount,
		CompletedChallenges:  models.StringSlice(u.CompletedChallenges),
		RecentLessons:        models.StringSlice(u.RecentLessons),
		RecentSubmissions:    models.StringSlice(u.RecentSubmissions),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// CreateUser inserts a new user. Username or email collisions wrap domain.ErrDuplicateKey.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	m := fromDomainUser(user)

	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		m.ID, m.Username, m.Email, m.PasswordHash, m.Rating, m.RatingHistory,
		m.CompletedLessons, m.CompletedLessonCount, m.CompletedChallenges,
		m.RecentLessons, m.RecentSubmissions, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("failed to create user %s: %w", user.Username, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", userID, false)
}

// GetUserForUpdate retrieves a user and locks the row for the current transaction.
func (r *sqlxUserRepository) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", userID, true)
}

// GetUserByEmail retrieves a user by email address.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email, false)
}

// GetUserByUsername retrieves a user by username.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", username, false)
}

func (r *sqlxUserRepository) getOne(ctx context.Context, where string, arg interface{}, lock bool) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	if lock {
		query += ` FOR UPDATE`
	}

	var m models.User
	if err := exec.GetContext(ctx, &m, exec.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user (%s): %w", where, err)
	}
	return toDomainUser(&m), nil
}

// UpdateProfile writes the username, email and password hash.
func (r *sqlxUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m := fromDomainUser(user)
	return r.update(ctx, user.ID, `UPDATE users SET username = ?, email = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
		m.Username, m.Email, m.PasswordHash, m.UpdatedAt, m.ID)
}

// UpdateRatingState writes the rating, its history and the challenge/submission records.
func (r *sqlxUserRepository) UpdateRatingState(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m := fromDomainUser(user)
	return r.update(ctx, user.ID, `UPDATE users SET rating = ?, rating_history = ?, completed_challenges = ?,
		recent_submissions = ?, updated_at = ? WHERE id = ?`,
		m.Rating, m.RatingHistory, m.CompletedChallenges, m.RecentSubmissions, m.UpdatedAt, m.ID)
}

// UpdateLessonState writes completed lessons, the lesson counter and recent lessons.
func (r *sqlxUserRepository) UpdateLessonState(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m := fromDomainUser(user)
	return r.update(ctx, user.ID, `UPDATE users SET completed_lessons = ?, completed_lesson_count = ?,
		recent_lessons = ?, updated_at = ? WHERE id = ?`,
		m.CompletedLessons, m.CompletedLessonCount, m.RecentLessons, m.UpdatedAt, m.ID)
}

func (r *sqlxUserRepository) update(ctx context.Context, userID, query string, args ...interface{}) error {
	exec := GetExecutor(ctx, r.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("failed to update user %s: %w", userID, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user %s: %w", userID, err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}
