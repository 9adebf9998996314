// Package catalog serves the static design-pattern question set bundled with the binary.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"design-dojo/internal/domain"
)

//go:embed questions.json
var embeddedQuestions []byte

// Catalog is an immutable, in-memory question index.
type Catalog struct {
	questions []domain.Question
	byID      map[string]*domain.Question
	byTopic   map[string][]domain.Question
	order     []string
}

// New loads the embedded question set.
func New() (*Catalog, error) {
	return Load(embeddedQuestions)
}

// Load builds a catalog from a JSON array of questions.
func Load(data []byte) (*Catalog, error) {
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question catalog: %w", err)
	}

	c := &Catalog{
		questions: questions,
		byID:      make(map[string]*domain.Question, len(questions)),
		byTopic:   make(map[string][]domain.Question),
	}
	for i := range questions {
		q := &questions[i]
		if q.QuestionID == "" || q.DesignPattern == "" {
			return nil, fmt.Errorf("question at index %d is missing question_id or design_pattern", i)
		}
		if _, dup := c.byID[q.QuestionID]; dup {
			return nil, fmt.Errorf("duplicate question_id %q", q.QuestionID)
		}
		c.byID[q.QuestionID] = q
		if _, seen := c.byTopic[q.DesignPattern]; !seen {
			c.order = append(c.order, q.DesignPattern)
		}
		c.byTopic[q.DesignPattern] = append(c.byTopic[q.DesignPattern], *q)
	}
	return c, nil
}

// GetQuestionByID implements domain.QuestionCatalog.
func (c *Catalog) GetQuestionByID(questionID string) (*domain.Question, bool) {
	q, ok := c.byID[questionID]
	if !ok {
		return nil, false
	}
	cp := *q
	return &cp, true
}

// GetQuestionsByTopic returns a copy of the questions for a design pattern slug.
func (c *Catalog) GetQuestionsByTopic(topic string) []domain.Question {
	qs := c.byTopic[topic]
	out := make([]domain.Question, len(qs))
	copy(out, qs)
	return out
}

// All returns every question in catalog order.
func (c *Catalog) All() []domain.Question {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Topics returns topics in the order they first appear in the catalog.
func (c *Catalog) Topics() []domain.Topic {
	topics := make([]domain.Topic, 0, len(c.order))
	for _, id := range c.order {
		topics = append(topics, domain.Topic{
			ID:        id,
			Name:      TopicName(id),
			Questions: c.GetQuestionsByTopic(id),
		})
	}
	return topics
}

// TopicName turns a slug such as "factory-method" into "Factory Method".
func TopicName(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
