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

	"github.com/jmoiron/sqlx"
)

type sqlxSolutionRepository struct {
	db *sqlx.DB
}

// NewSolutionRepository creates a new instance of sqlxSolutionRepository.
func NewSolutionRepository(db *sqlx.DB) domain.SolutionRepository {
	return &sqlxSolutionRepository{db: db}
}

// Get returns (nil, nil) when no solution is stored for the question.
func (r *sqlxSolutionRepository) Get(ctx context.Context, questionID string) (*domain.OptimalSolution, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT question_id, design_pattern, solution, updated_at
		FROM optimal_solutions WHERE question_id = ?`)

	var m models.OptimalSolution
	if err := exec.GetContext(ctx, &m, query, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get optimal solution for question %s: %w", questionID, err)
	}
	return &domain.OptimalSolution{
		QuestionID:    m.QuestionID,
		DesignPattern: m.DesignPattern,
		Code:          m.Solution,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// Upsert stores the solution, replacing any previous one for the question.
// A concurrent insert of the same question falls back to an update.
func (r *sqlxSolutionRepository) Upsert(ctx context.Context, solution *domain.OptimalSolution) error {
	if solution.Degraded {
		return domain.NewInvalidInputError("degraded solutions are not stored")
	}
	if solution.UpdatedAt.IsZero() {
		solution.UpdatedAt = time.Now()
	}

	updated, err := r.update(ctx, solution)
	if err != nil || updated {
		return err
	}

	exec := GetExecutor(ctx, r.db)
	insert := exec.Rebind(`INSERT INTO optimal_solutions (question_id, design_pattern, solution, updated_at)
		VALUES (?, ?, ?, ?)`)
	_, err = exec.ExecContext(ctx, insert, solution.QuestionID, solution.DesignPattern, solution.Code, solution.UpdatedAt)
	if err == nil {
		return nil
	}
	if !database.IsUniqueViolation(err) {
		return fmt.Errorf("failed to insert optimal solution for question %s: %w", solution.QuestionID, err)
	}
	_, err = r.update(ctx, solution)
	return err
}

func (r *sqlxSolutionRepository) update(ctx context.Context, solution *domain.OptimalSolution) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE optimal_solutions SET design_pattern = ?, solution = ?, updated_at = ?
		WHERE question_id = ?`)
	result, err := exec.ExecContext(ctx, query, solution.DesignPattern, solution.Code, solution.UpdatedAt, solution.QuestionID)
	if err != nil {
		return false, fmt.Errorf("failed to update optimal solution for question %s: %w", solution.QuestionID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
