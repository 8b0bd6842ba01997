package validation

import (
	"errors"
	"testing"

	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldCodes(t *testing.T, err error) map[string]domain.ErrorCode {
	t.Helper()
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected domain.ValidationErrors, got %v", err)
	codes := make(map[string]domain.ErrorCode, len(verrs))
	for _, ve := range verrs {
		codes[ve.Field] = ve.Code
	}
	return codes
}

func TestValidator_SubmitAnswersRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.SubmitAnswersRequest{
		QuizID:      "quiz-1",
		Name:        "Bob",
		Email:       "bob@example.com",
		QuestionIDs: []string{"q1"},
		Answers:     []string{"A"},
	}
	assert.NoError(t, v.Struct(valid))

	codes := fieldCodes(t, v.Struct(dto.SubmitAnswersRequest{Email: "not-an-email", Answers: []string{}}))
	assert.Equal(t, domain.CodeMissingField, codes["quizId"])
	assert.Equal(t, domain.CodeMissingField, codes["name"])
	assert.Equal(t, domain.CodeInvalidFormat, codes["email"])
	assert.Equal(t, domain.CodeValidation, codes["questionIds"])
	assert.Equal(t, domain.CodeOutOfRange, codes["answers"])
}

func TestValidator_CreateQuestionRequest(t *testing.T) {
	v := NewValidator()

	codes := fieldCodes(t, v.Struct(dto.CreateQuestionRequest{
		QuizID:  "quiz-1",
		Text:    "Pick one",
		Options: []string{"A", "B", "C", "D", "E", "F"},
		Correct: "A",
	}))
	assert.Equal(t, domain.CodeOutOfRange, codes["options"])

	codes = fieldCodes(t, v.Struct(dto.CreateQuestionRequest{
		QuizID:  "quiz-1",
		Text:    "Pick one",
		Options: []string{"A", ""},
		Correct: "A",
	}))
	assert.Equal(t, domain.CodeMissingField, codes["options[1]"])
}

func TestValidator_ID(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ID("quizId", util.NewULID()))
	assert.Equal(t, domain.CodeMissingField, fieldCodes(t, v.ID("quizId", " "))["quizId"])
	assert.Equal(t, domain.CodeInvalidFormat, fieldCodes(t, v.ID("quizId", "not-a-ulid"))["quizId"])
}
