package domain

// Question is a design-pattern exercise from the static catalog.
type Question struct {
	QuestionID    string `json:"question_id"`
	DesignPattern string `json:"design_pattern"`
	Title         string `json:"title"`
	Context       string `json:"context"`
}

// Topic groups the catalog questions that share a design pattern slug.
type Topic struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// QuestionCatalog is the read-only source of questions.
type QuestionCatalog interface {
	GetQuestionByID(questionID string) (*Question, bool)
	GetQuestionsByTopic(topic string) []Question
	All() []Question
	Topics() []Topic
}
