package seedmodels

// SeedQuestion defines a multiple-choice question in the JSON seed file.
type SeedQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// SeedQuiz defines a quiz and its questions in the JSON seed file.
type SeedQuiz struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Questions   []SeedQuestion `json:"questions"`
}

// SeedOwner is the account that owns every seeded quiz.
type SeedOwner struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SeedFile is the top-level structure of the JSON seed file.
type SeedFile struct {
	Owner   SeedOwner  `json:"owner"`
	Quizzes []SeedQuiz `json:"quizzes"`
}
