package dto

import "time"

// CreateSubmissionRequest is the body of POST /api/submission/create.
// @Description Code submission to be evaluated
type CreateSubmissionRequest struct {
	UserID      string `json:"user_id" validate:"required,notblank"`
	QuestionID  string `json:"question_id" validate:"required,notblank"`
	Username    string `json:"username" validate:"required,max=100"`
	LLMResponse string `json:"llm_response" validate:"required"`
}

// CreateSubmissionResponse is returned once the submission is stored.
// @Description Result of an evaluated submission
type CreateSubmissionResponse struct {
	Message      string  `json:"message"`
	SubmissionID string  `json:"submission_id"`
	Score        int     `json:"score"`
	RatingChange int     `json:"rating_change"`
	OldRating    float64 `json:"old_rating"`
	NewRating    float64 `json:"new_rating"`
}

// SubmissionDetailResponse is a stored submission plus the owner's current rating.
type SubmissionDetailResponse struct {
	SubmissionID    string                 `json:"submission_id"`
	UserID          string                 `json:"user_id"`
	QuestionID      string                 `json:"question_id"`
	Username        string                 `json:"username"`
	Score           int                    `json:"score"`
	LLMResponse     string                 `json:"llm_response"`
	EvaluationData  map[string]interface{} `json:"evaluation_data"`
	OptimalSolution string                 `json:"optimal_solution,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	CurrentRating   float64                `json:"current_rating"`
}

// SolutionResponse is the body of GET /api/llm-solution/{question_id}.
type SolutionResponse struct {
	QuestionID    string `json:"question_id"`
	Solution      string `json:"solution"`
	DesignPattern string `json:"design_pattern"`
	FromCache     bool   `json:"from_cache"`
}

// QuestionResponse is a catalog question.
type QuestionResponse struct {
	QuestionID    string `json:"question_id"`
	DesignPattern string `json:"design_pattern"`
	Title         string `json:"title"`
	Context       string `json:"context"`
}

// QuestionEnvelope wraps a question the way the question endpoints return it.
type QuestionEnvelope struct {
	Question QuestionResponse `json:"question"`
}
