package domain

import (
	"context"
	"time"
	"unicode/utf8"
)

// MaxCodeBytes caps the stored submission code.
const MaxCodeBytes = 16 * 1024 * 1024

// Submission is an immutable record of one evaluated code submission.
type Submission struct {
	SubmissionID    string
	UserID          string
	QuestionID      string
	Username        string
	Code            string
	Score           int
	EvaluationData  map[string]interface{}
	OptimalSolution string
	CreatedAt       time.Time
}

// Validate validates the submission before it is persisted.
func (s *Submission) Validate() error {
	var errs ValidationErrors
	if s.SubmissionID == "" {
		errs = append(errs, NewMissingFieldError("submission_id"))
	}
	if s.UserID == "" {
		errs = append(errs, NewMissingFieldError("user_id"))
	}
	if s.QuestionID == "" {
		errs = append(errs, NewMissingFieldError("question_id"))
	}
	if s.Username == "" {
		errs = append(errs, NewMissingFieldError("username"))
	}
	if s.Code == "" {
		errs = append(errs, NewMissingFieldError("code"))
	}
	if s.Score < 0 || s.Score > 100 {
		errs = append(errs, NewOutOfRangeError("score", s.Score, 0, 100))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TruncateCode limits code to MaxCodeBytes without splitting a UTF-8 sequence.
func TruncateCode(code string) string {
	if len(code) <= MaxCodeBytes {
		return code
	}
	cut := MaxCodeBytes
	for cut > 0 && !utf8.RuneStart(code[cut]) {
		cut--
	}
	return code[:cut]
}

// SubmissionRepository defines the persistence operations for submissions.
type SubmissionRepository interface {
	// Create validates and inserts the submission. A unique violation is
	// reported as an error wrapping ErrDuplicateKey.
	Create(ctx context.Context, s *Submission) error
	// CreateDirect inserts without validation through a plain positional statement.
	// A duplicate key is accepted when the stored row has the same user and question.
	CreateDirect(ctx context.Context, s *Submission) error
	// GetBySubmissionID returns (nil, nil) when no submission matches.
	GetBySubmissionID(ctx context.Context, submissionID string) (*Submission, error)
	// FindCachedSolution returns the first non-empty optimal solution stored
	// with any submission for the question, or "" when there is none.
	FindCachedSolution(ctx context.Context, questionID string) (string, error)
	// UpdateOptimalSolution backfills the solution of a submission stored without one.
	UpdateOptimalSolution(ctx context.Context, submissionID, solution string) error
}
