package evaluator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"design-dojo/internal/domain"
)

const (
	defaultStrength    = "Good attempt at implementing the design pattern"
	defaultImprovement = "Consider reviewing the design pattern principles"
)

var errMissingScore = errors.New("missing 'score' field in evaluation data")

// decodeError marks a response whose payload was not valid JSON.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "failed to decode evaluation JSON: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// ExtractJSONPayload pulls the JSON document out of a model response. A
// ```json fence wins over a bare ``` fence, which wins over the raw text.
func ExtractJSONPayload(response string) string {
	return extractFenced(response, "```json")
}

// ExtractCodeBlock pulls Java source out of a model response using the same
// fence preference as ExtractJSONPayload.
func ExtractCodeBlock(response string) string {
	return extractFenced(response, "```java")
}

func extractFenced(response, preferredFence string) string {
	if _, after, ok := strings.Cut(response, preferredFence); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(response, "```"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(response)
}

// parseEvaluation turns the extracted payload into a normalized result.
// Syntax errors are reported as *decodeError; every other problem is a plain error.
func parseEvaluation(payload string) (domain.EvaluationResult, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return domain.EvaluationResult{}, &decodeError{err: err}
	}
	if dec.More() {
		return domain.EvaluationResult{}, &decodeError{err: errors.New("unexpected data after JSON value")}
	}

	raw, ok := doc.(map[string]interface{})
	if !ok {
		return domain.EvaluationResult{}, fmt.Errorf("evaluation payload is %T, not an object", doc)
	}

	rawScore, ok := raw["score"]
	if !ok {
		return domain.EvaluationResult{}, errMissingScore
	}
	score, err := coerceScore(rawScore)
	if err != nil {
		return domain.EvaluationResult{}, err
	}
	score = clampScore(score)

	strengths := toStringList(raw["strengths"])
	if len(strengths) == 0 {
		strengths = []string{defaultStrength}
	}
	improvements := toStringList(raw["improvements"])
	if len(improvements) == 0 {
		improvements = []string{defaultImprovement}
	}

	raw["score"] = score
	raw["strengths"] = strengths
	raw["improvements"] = improvements

	return domain.EvaluationResult{
		Score:        score,
		Strengths:    strengths,
		Improvements: improvements,
		Raw:          raw,
	}, nil
}

// coerceScore accepts integers, truncates fractional numbers and parses numeric
// strings. Values outside the int range saturate toward the nearest bound.
func coerceScore(v interface{}) (int, error) {
	switch s := v.(type) {
	case json.Number:
		if i, err := s.Int64(); err == nil {
			return int(clampInt64(i)), nil
		}
		f, err := strconv.ParseFloat(s.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("invalid score %q: %w", s.String(), err)
		}
		return truncateScore(f)
	case float64:
		return truncateScore(s)
	case int:
		return s, nil
	case string:
		trimmed := strings.TrimSpace(s)
		if i, err := strconv.Atoi(trimmed); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("invalid score %q: %w", s, err)
		}
		return truncateScore(f)
	default:
		return 0, fmt.Errorf("invalid score type %T", v)
	}
}

// truncateScore drops the fraction. Anything past the score range saturates
// before conversion so huge values never wrap around.
func truncateScore(f float64) (int, error) {
	switch {
	case math.IsNaN(f):
		return 0, errors.New("invalid score NaN")
	case f >= 100:
		return 100, nil
	case f <= 0:
		return 0, nil
	}
	return int(f), nil
}

func clampInt64(i int64) int64 {
	if i > 100 {
		return 100
	}
	if i < 0 {
		return 0
	}
	return i
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func toStringList(v interface{}) []string {
	switch items := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(items) == "" {
			return nil
		}
		return []string{items}
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return items
	default:
		return []string{fmt.Sprint(items)}
	}
}
