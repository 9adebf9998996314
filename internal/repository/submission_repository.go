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

const submissionColumns = `submission_id, user_id, question_id, username, code, score,
	evaluation_data, optimal_solution, created_at`

type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new instance of sqlxSubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func toDomainSubmission(m *models.Submission) *domain.Submission {
	if m == nil {
		return nil
	}
	return &domain.Submission{
		SubmissionID:    m.SubmissionID,
		UserID:          m.UserID,
		QuestionID:      m.QuestionID,
		Username:        m.Username,
		Code:            m.Code,
		Score:           m.Score,
		EvaluationData:  map[string]interface{}(m.EvaluationData),
		OptimalSolution: util.NullStringToString(m.OptimalSolution),
		CreatedAt:       m.CreatedAt,
	}
}

func fromDomainSubmission(s *domain.Submission) *models.Submission {
	if s == nil {
		return nil
	}
	return &models.Submission{
		SubmissionID:    s.SubmissionID,
		UserID:          s.UserID,
		QuestionID:      s.QuestionID,
		Username:        s.Username,
		Code:            domain.TruncateCode(s.Code),
		Score:           s.Score,
		EvaluationData:  models.JSONMap(s.EvaluationData),
		OptimalSolution: util.StringToNullString(s.OptimalSolution),
		CreatedAt:       s.CreatedAt,
	}
}

// Create validates the submission and inserts it.
func (r *sqlxSubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.insert(ctx, s)
}

// CreateDirect inserts the submission without validation. On a duplicate key
// it reads the stored row back: a row with the same owner and question means
// an earlier insert already landed, anything else is still a conflict.
func (r *sqlxSubmissionRepository) CreateDirect(ctx context.Context, s *domain.Submission) error {
	err := r.insert(ctx, s)
	if err == nil || !errors.Is(err, domain.ErrDuplicateKey) {
		return err
	}

	stored, getErr := r.GetBySubmissionID(ctx, s.SubmissionID)
	if getErr != nil {
		return fmt.Errorf("%w (reconcile failed: %v)", err, getErr)
	}
	if stored != nil && stored.UserID == s.UserID && stored.QuestionID == s.QuestionID {
		return nil
	}
	return err
}

func (r *sqlxSubmissionRepository) insert(ctx context.Context, s *domain.Submission) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	m := fromDomainSubmission(s)

	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO submissions (` + submissionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		m.SubmissionID, m.UserID, m.QuestionID, m.Username, m.Code, m.Score,
		m.EvaluationData, m.OptimalSolution, m.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("submission %s: %w", s.SubmissionID, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert submission %s: %w", s.SubmissionID, err)
	}
	return nil
}

// GetBySubmissionID returns (nil, nil) when the submission does not exist.
func (r *sqlxSubmissionRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + submissionColumns + ` FROM submissions WHERE submission_id = ?`)

	var m models.Submission
	if err := exec.GetContext(ctx, &m, query, submissionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission %s: %w", submissionID, err)
	}
	return toDomainSubmission(&m), nil
}

// FindCachedSolution returns the oldest optimal solution stored alongside a
// submission for the question.
func (r *sqlxSubmissionRepository) FindCachedSolution(ctx context.Context, questionID string) (string, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT optimal_solution FROM submissions
		WHERE question_id = ? AND optimal_solution IS NOT NULL
		ORDER BY created_at
		FETCH FIRST 1 ROWS ONLY`)

	var solution sql.NullString
	if err := exec.GetContext(ctx, &solution, query, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find cached solution for question %s: %w", questionID, err)
	}
	return util.NullStringToString(solution), nil
}

// UpdateOptimalSolution sets the solution only when none was stored with the submission.
func (r *sqlxSubmissionRepository) UpdateOptimalSolution(ctx context.Context, submissionID, solution string) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE submissions SET optimal_solution = ?
		WHERE submission_id = ? AND optimal_solution IS NULL`)
	if _, err := exec.ExecContext(ctx, query, solution, submissionID); err != nil {
		return fmt.Errorf("failed to backfill optimal solution for submission %s: %w", submissionID, err)
	}
	return nil
}
