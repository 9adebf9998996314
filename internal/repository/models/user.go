package models

import (
	"database/sql"
	"time"
)

// User is a row of the USERS table.
type User struct {
	ID                   string         `db:"ID"`
	Username             string         `db:"USERNAME"`
	Email                sql.NullString `db:"EMAIL"`
	PasswordHash         string         `db:"PASSWORD_HASH"`
	Rating               float64        `db:"RATING"`
	RatingHistory        FloatSlice     `db:"RATING_HISTORY"`
	CompletedLessons     StringSlice    `db:"COMPLETED_LESSONS"`
	CompletedLessonCount int            `db:"COMPLETED_LESSON_COUNT"`
	CompletedChallenges  StringSlice    `db:"COMPLETED_CHALLENGES"`
	RecentLessons        StringSlice    `db:"RECENT_LESSONS"`
	RecentSubmissions    StringSlice    `db:"RECENT_SUBMISSIONS"`
	CreatedAt            time.Time      `db:"CREATED_AT"`
	UpdatedAt            time.Time      `db:"UPDATED_AT"`
}

func (User) TableName() string {
	return "users"
}

// Submission is a row of the SUBMISSIONS table.
type Submission struct {
	SubmissionID    string         `db:"SUBMISSION_ID"`
	UserID          string         `db:"USER_ID"`
	QuestionID      string         `db:"QUESTION_ID"`
	Username        string         `db:"USERNAME"`
	Code            string         `db:"CODE"`
	Score           int            `db:"SCORE"`
	EvaluationData  JSONMap        `db:"EVALUATION_DATA"`
	OptimalSolution sql.NullString `db:"OPTIMAL_SOLUTION"`
	CreatedAt       time.Time      `db:"CREATED_AT"`
}

func (Submission) TableName() string {
	return "submissions"
}

// OptimalSolution is a row of the OPTIMAL_SOLUTIONS table.
type OptimalSolution struct {
	QuestionID    string    `db:"QUESTION_ID"`
	DesignPattern string    `db:"DESIGN_PATTERN"`
	Solution      string    `db:"SOLUTION"`
	UpdatedAt     time.Time `db:"UPDATED_AT"`
}

func (OptimalSolution) TableName() string {
	return "optimal_solutions"
}
