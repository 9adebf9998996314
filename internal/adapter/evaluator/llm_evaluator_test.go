package evaluator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model returning a canned response.
type fakeModel struct {
	response string
	err      error
	delay    time.Duration
	panicMsg string
	prompts  []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, p := range m.Parts {
			if text, ok := p.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

const singletonContext = "An application reads its configuration from disk once and shares it with every component."

func TestLLMEvaluator_Evaluate_FencedJSON(t *testing.T) {
	model := &fakeModel{response: "Here you go:\n```json\n{\"score\": 85, \"strengths\": [\"Lazy init\"], \"improvements\": [\"Use enum\"], \"design_pattern_implementation\": \"solid\"}\n```\nThanks"}
	ev := NewLLMEvaluator(model, Config{Timeout: time.Second})

	res := ev.Evaluate(context.Background(), "class Config {}", singletonContext, "implement-singleton")

	assert.Equal(t, 85, res.Score)
	assert.False(t, res.Degraded)
	assert.Equal(t, []string{"Lazy init"}, res.Strengths)
	assert.Equal(t, []string{"Use enum"}, res.Improvements)
	assert.Equal(t, "solid", res.Raw["design_pattern_implementation"])

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "EXPECTED DESIGN PATTERN:\nimplement-singleton")
	assert.Contains(t, model.prompts[0], "class Config {}")
	assert.Contains(t, model.prompts[0], "(70% weight)")
}

func TestLLMEvaluator_Evaluate_ScoreHandling(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
		degraded bool
	}{
		{"above range is clamped", `{"score": 140}`, 100, false},
		{"below range is clamped", `{"score": -5}`, 0, false},
		{"fraction is truncated", `{"score": 77.9}`, 77, false},
		{"numeric string is accepted", `{"score": "64"}`, 64, false},
		{"generic fence", "```\n{\"score\": 91}\n```", 91, false},
		{"huge float saturates high", `{"score": 1e30}`, 100, false},
		{"huge integer saturates high", `{"score": 99999999999999999999}`, 100, false},
		{"huge numeric string saturates high", `{"score": "99999999999999999999"}`, 100, false},
		{"huge negative saturates low", `{"score": -1e30}`, 0, false},
		{"fractional string is truncated", `{"score": "88.6"}`, 88, false},
		{"missing score falls back", `{"strengths": ["x"]}`, UnavailableScore, true},
		{"non numeric score falls back", `{"score": "great"}`, UnavailableScore, true},
		{"non object payload falls back", `[1, 2, 3]`, UnavailableScore, true},
		{"invalid json falls back", "I think this deserves an 80", MalformedScore, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NewLLMEvaluator(&fakeModel{response: tt.response}, Config{})
			res := ev.Evaluate(context.Background(), "code", "ctx", "builder-pattern")

			assert.Equal(t, tt.want, res.Score)
			assert.Equal(t, tt.degraded, res.Degraded)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
			assert.Equal(t, res.Score, res.Raw["score"])
			if tt.degraded {
				assert.NotEmpty(t, res.Raw["error"])
			}
		})
	}
}

func TestLLMEvaluator_Evaluate_DefaultFeedback(t *testing.T) {
	ev := NewLLMEvaluator(&fakeModel{response: `{"score": 72, "strengths": [], "improvements": ""}`}, Config{})

	res := ev.Evaluate(context.Background(), "code", "ctx", "adapter-pattern")

	assert.Equal(t, []string{"Good attempt at implementing the design pattern"}, res.Strengths)
	assert.Equal(t, []string{"Consider reviewing the design pattern principles"}, res.Improvements)
}

func TestLLMEvaluator_Evaluate_TransportError(t *testing.T) {
	ev := NewLLMEvaluator(&fakeModel{err: errors.New("quota exceeded")}, Config{})

	res := ev.Evaluate(context.Background(), "code", "ctx", "facade-pattern")

	assert.Equal(t, 65, res.Score)
	assert.True(t, res.Degraded)
	assert.Equal(t, []string{"Submission was received"}, res.Strengths)
	assert.Contains(t, res.Raw["error"], "quota exceeded")
}

func TestLLMEvaluator_Evaluate_Timeout(t *testing.T) {
	ev := NewLLMEvaluator(&fakeModel{response: `{"score": 99}`, delay: time.Second}, Config{Timeout: 20 * time.Millisecond})

	res := ev.Evaluate(context.Background(), "code", "ctx", "observer-pattern")

	assert.Equal(t, 65, res.Score)
	assert.Contains(t, res.Raw["error"], "timed out")
}

func TestLLMEvaluator_Evaluate_Panic(t *testing.T) {
	ev := NewLLMEvaluator(&fakeModel{panicMsg: "boom"}, Config{})

	var res = ev.Evaluate(context.Background(), "code", "ctx", "strategy-pattern")

	assert.Equal(t, 65, res.Score)
	assert.True(t, res.Degraded)
}

func TestLLMEvaluator_GenerateOptimalSolution(t *testing.T) {
	longContext := strings.Repeat("x", 150)
	model := &fakeModel{response: "```java\npublic class Registry {}\n```"}
	ev := NewLLMEvaluator(model, Config{})

	sol := ev.GenerateOptimalSolution(context.Background(), longContext, "implement-singleton")

	assert.False(t, sol.Degraded)
	assert.Equal(t, "implement-singleton", sol.DesignPattern)
	assert.True(t, strings.HasPrefix(sol.Code, "/**\n * Optimal implementation of implement-singleton design pattern"))
	assert.Contains(t, sol.Code, " * Problem: "+strings.Repeat("x", 100)+"...\n")
	assert.NotContains(t, sol.Code, strings.Repeat("x", 101))
	assert.True(t, strings.HasSuffix(sol.Code, "public class Registry {}"))
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Correctly implements the implement-singleton design pattern")
}

func TestLLMEvaluator_GenerateOptimalSolution_Fallback(t *testing.T) {
	for name, model := range map[string]*fakeModel{
		"error": {err: errors.New("unavailable")},
		"empty": {response: "```java\n```"},
		"panic": {panicMsg: "boom"},
	} {
		t.Run(name, func(t *testing.T) {
			sol := NewLLMEvaluator(model, Config{}).GenerateOptimalSolution(context.Background(), "ctx", "facade-pattern")

			assert.True(t, sol.Degraded)
			assert.Contains(t, sol.Code, "Generic facade-pattern pattern implementation")
			assert.Contains(t, sol.Code, "An optimal facade-pattern implementation would be shown here")
		})
	}
}

func TestExtractJSONPayload(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSONPayload("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, ExtractJSONPayload("prefix ```\n{\"a\":1}\n``` suffix"))
	assert.Equal(t, `{"a":1}`, ExtractJSONPayload("  {\"a\":1}  "))
	assert.Equal(t, `{"b":2}`, ExtractJSONPayload("```\nignored\n```\n```json\n{\"b\":2}\n```"))
	assert.Equal(t, `{"open":true}`, ExtractJSONPayload("```json\n{\"open\":true}"))
}

func TestExtractCodeBlock(t *testing.T) {
	assert.Equal(t, "class A {}", ExtractCodeBlock("```java\nclass A {}\n```"))
	assert.Equal(t, "class B {}", ExtractCodeBlock("```\nclass B {}\n```"))
	assert.Equal(t, "class C {}", ExtractCodeBlock("class C {}"))
}
