package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"design-dojo/internal/domain"
	"design-dojo/internal/logger"
	"design-dojo/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second

	// UnavailableScore is used when the model could not be reached or its answer was unusable.
	UnavailableScore = 65
	// MalformedScore is used when the model answered with something that is not JSON.
	MalformedScore = 70
)

// Config tunes calls made by LLMEvaluator.
type Config struct {
	Timeout     time.Duration
	Temperature float64
}

// LLMEvaluator implements domain.CodeEvaluator on top of a langchaingo model.
type LLMEvaluator struct {
	model llms.Model
	cfg   Config
}

// NewLLMEvaluator creates a new instance of LLMEvaluator
func NewLLMEvaluator(model llms.Model, cfg Config) *LLMEvaluator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &LLMEvaluator{model: model, cfg: cfg}
}

// Evaluate scores a code submission. It never fails: transport errors,
// timeouts and unusable answers all produce a degraded result.
func (e *LLMEvaluator) Evaluate(ctx context.Context, code, problemContext, designPattern string) (result domain.EvaluationResult) {
	l := logger.Get()
	start := time.Now()
	defer func() {
		metrics.EvaluationDuration.WithLabelValues("evaluate").Observe(time.Since(start).Seconds())
	}()
	defer func() {
		if r := recover(); r != nil {
			l.Error("Evaluation panicked", zap.Any("panic", r), zap.String("design_pattern", designPattern))
			metrics.EvaluationFallbacks.WithLabelValues("evaluate", "panic").Inc()
			result = unavailableResult(fmt.Errorf("evaluation panicked: %v", r))
		}
	}()

	l.Info("Evaluating submission with LLM",
		zap.String("design_pattern", designPattern),
		zap.Int("code_bytes", len(code)))

	response, err := e.callLLM(ctx, buildEvaluationPrompt(code, problemContext, designPattern))
	if err != nil {
		metrics.EvaluationFallbacks.WithLabelValues("evaluate", "llm_error").Inc()
		return unavailableResult(err)
	}
	l.Debug("Raw LLM evaluation received", zap.String("raw_response", response))

	payload := ExtractJSONPayload(response)
	parsed, err := parseEvaluation(payload)
	if err != nil {
		var decErr *decodeError
		if errors.As(err, &decErr) {
			l.Error("Failed to decode LLM evaluation",
				zap.Error(err),
				zap.String("payload", payload))
			metrics.EvaluationFallbacks.WithLabelValues("evaluate", "malformed_json").Inc()
			return malformedResult(err)
		}
		l.Error("LLM evaluation was unusable", zap.Error(err), zap.String("payload", payload))
		metrics.EvaluationFallbacks.WithLabelValues("evaluate", "invalid_payload").Inc()
		return unavailableResult(err)
	}

	l.Info("LLM evaluation parsed", zap.Int("score", parsed.Score))
	return parsed
}

// GenerateOptimalSolution asks the model for a reference implementation.
// On failure it returns a placeholder marked Degraded.
func (e *LLMEvaluator) GenerateOptimalSolution(ctx context.Context, problemContext, designPattern string) (solution domain.OptimalSolution) {
	l := logger.Get()
	start := time.Now()
	defer func() {
		metrics.EvaluationDuration.WithLabelValues("optimal_solution").Observe(time.Since(start).Seconds())
	}()
	defer func() {
		if r := recover(); r != nil {
			l.Error("Optimal solution generation panicked", zap.Any("panic", r))
			metrics.EvaluationFallbacks.WithLabelValues("optimal_solution", "panic").Inc()
			solution = placeholder(designPattern)
		}
	}()

	l.Info("Generating optimal solution", zap.String("design_pattern", designPattern))

	response, err := e.callLLM(ctx, buildSolutionPrompt(problemContext, designPattern))
	if err != nil {
		metrics.EvaluationFallbacks.WithLabelValues("optimal_solution", "llm_error").Inc()
		return placeholder(designPattern)
	}

	code := ExtractCodeBlock(response)
	if code == "" {
		l.Warn("LLM returned an empty solution", zap.String("design_pattern", designPattern))
		metrics.EvaluationFallbacks.WithLabelValues("optimal_solution", "empty").Inc()
		return placeholder(designPattern)
	}

	return domain.OptimalSolution{
		DesignPattern: designPattern,
		Code:          solutionHeader(problemContext, designPattern, code),
		UpdatedAt:     time.Now(),
	}
}

func (e *LLMEvaluator) callLLM(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt, llms.WithTemperature(e.cfg.Temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err), zap.Duration("timeout", e.cfg.Timeout))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

func unavailableResult(cause error) domain.EvaluationResult {
	strengths := []string{"Submission was received"}
	improvements := []string{
		"AI evaluation service encountered an error",
		"Please try resubmitting or contact support if the issue persists",
	}
	return domain.EvaluationResult{
		Score:        UnavailableScore,
		Strengths:    strengths,
		Improvements: improvements,
		Raw: map[string]interface{}{
			"score":        UnavailableScore,
			"strengths":    strengths,
			"improvements": improvements,
			"error":        cause.Error(),
		},
		Degraded: true,
	}
}

func malformedResult(cause error) domain.EvaluationResult {
	strengths := []string{"Submission was processed", "Code structure is present"}
	improvements := []string{"Error parsing AI evaluation, please try again"}
	return domain.EvaluationResult{
		Score:        MalformedScore,
		Strengths:    strengths,
		Improvements: improvements,
		Raw: map[string]interface{}{
			"score":               MalformedScore,
			"strengths":           strengths,
			"improvements":        improvements,
			"additional_feedback": "The AI evaluation service encountered an issue processing your code.",
			"error":               cause.Error(),
		},
		Degraded: true,
	}
}

func placeholder(designPattern string) domain.OptimalSolution {
	return domain.OptimalSolution{
		DesignPattern: designPattern,
		Code:          placeholderSolution(designPattern),
		Degraded:      true,
		UpdatedAt:     time.Now(),
	}
}
