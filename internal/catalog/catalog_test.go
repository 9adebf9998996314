package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmbeddedCatalog(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	topics := c.Topics()
	require.Len(t, topics, 12)
	assert.Equal(t, "simple-refactoring", topics[0].ID)
	assert.Equal(t, "Simple Refactoring", topics[0].Name)

	for _, topic := range topics {
		assert.NotEmpty(t, topic.Questions, topic.ID)
		for _, q := range topic.Questions {
			assert.Equal(t, topic.ID, q.DesignPattern)
			assert.NotEmpty(t, q.Context)
		}
	}

	q, ok := c.GetQuestionByID("5")
	require.True(t, ok)
	assert.Equal(t, "implement-singleton", q.DesignPattern)

	_, ok = c.GetQuestionByID("9999")
	assert.False(t, ok)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	q, _ := c.GetQuestionByID("1")
	q.Title = "changed"
	again, _ := c.GetQuestionByID("1")
	assert.NotEqual(t, "changed", again.Title)

	qs := c.GetQuestionsByTopic("builder-pattern")
	qs[0].Context = "changed"
	assert.NotEqual(t, "changed", c.GetQuestionsByTopic("builder-pattern")[0].Context)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]byte(`not json`))
	assert.Error(t, err)

	_, err = Load([]byte(`[{"question_id":"1","design_pattern":""}]`))
	assert.ErrorContains(t, err, "missing")

	_, err = Load([]byte(`[{"question_id":"1","design_pattern":"a"},{"question_id":"1","design_pattern":"b"}]`))
	assert.ErrorContains(t, err, "duplicate")
}

func TestTopicName(t *testing.T) {
	assert.Equal(t, "Factory Method", TopicName("factory-method"))
	assert.Equal(t, "Observer", TopicName("observer"))
}
