package seedmodels

// SeedUser defines a demo account in the JSON seed file.
type SeedUser struct {
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	CompletedLessons []string `json:"completed_lessons"`
}

// SeedFile is the root of the JSON seed file.
type SeedFile struct {
	Users []SeedUser `json:"users"`
	// WarmSolutions pre-generates the optimal solution of every catalog question.
	WarmSolutions bool `json:"warm_solutions"`
}
