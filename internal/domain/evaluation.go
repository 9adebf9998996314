package domain

import (
	"context"
	"time"
)

// EvaluationResult is the normalized outcome of scoring a code submission.
// Degraded is set when the score came from a fallback rather than the model.
type EvaluationResult struct {
	Score        int
	Strengths    []string
	Improvements []string
	Raw          map[string]interface{}
	Degraded     bool
}

// OptimalSolution is a reference implementation for a question.
// Degraded solutions are canned placeholders and must not be cached.
type OptimalSolution struct {
	QuestionID    string
	DesignPattern string
	Code          string
	Degraded      bool
	UpdatedAt     time.Time
}

// CodeEvaluator scores code and produces reference solutions. Implementations
// never return errors; failures surface as degraded results.
type CodeEvaluator interface {
	Evaluate(ctx context.Context, code, problemContext, designPattern string) EvaluationResult
	GenerateOptimalSolution(ctx context.Context, problemContext, designPattern string) OptimalSolution
}

// SolutionRepository persists generated optimal solutions keyed by question.
type SolutionRepository interface {
	// Get returns (nil, nil) when no solution is stored for the question.
	Get(ctx context.Context, questionID string) (*OptimalSolution, error)
	Upsert(ctx context.Context, solution *OptimalSolution) error
}

// EvaluationFailureScore replaces the score when the evaluation step itself fails.
const EvaluationFailureScore = 70

// NewEvaluationFailure is substituted when the evaluator could not run to completion.
func NewEvaluationFailure(cause error) EvaluationResult {
	strengths := []string{"Submission was processed", "Error occurred during advanced evaluation"}
	improvements := []string{"Error in evaluation process, please try again later"}
	raw := map[string]interface{}{
		"score":        EvaluationFailureScore,
		"strengths":    strengths,
		"improvements": improvements,
	}
	if cause != nil {
		raw["error"] = cause.Error()
	}
	return EvaluationResult{
		Score:        EvaluationFailureScore,
		Strengths:    strengths,
		Improvements: improvements,
		Raw:          raw,
		Degraded:     true,
	}
}
