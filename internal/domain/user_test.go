package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_CompleteLesson(t *testing.T) {
	u := NewUser("01HZX", "bob", "bob@example.com", "hash")

	assert.True(t, u.CompleteLesson("intro-to-patterns"))
	assert.False(t, u.CompleteLesson("intro-to-patterns"))
	assert.True(t, u.CompleteLesson("singleton"))

	assert.Equal(t, []string{"intro-to-patterns", "singleton"}, u.CompletedLessons)
	assert.Equal(t, 2, u.CompletedLessonCount)
}

func TestUser_TouchLesson(t *testing.T) {
	u := NewUser("01HZX", "bob", "", "hash")

	u.TouchLesson("a")
	u.TouchLesson("b")
	u.TouchLesson("c")
	u.TouchLesson("d")
	assert.Equal(t, []string{"b", "c", "d"}, u.RecentLessons)

	u.TouchLesson("b")
	assert.Equal(t, []string{"c", "d", "b"}, u.RecentLessons)
}

func TestUser_LastRatings(t *testing.T) {
	u := NewUser("01HZX", "bob", "", "hash")
	u.Rating = 12.5
	assert.Equal(t, []float64{12.5}, u.LastRatings())

	u.RatingHistory = []float64{3, 7}
	assert.Equal(t, []float64{3, 7}, u.LastRatings())
}

func TestUser_Validate(t *testing.T) {
	err := (&User{}).Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)

	assert.NoError(t, NewUser("01HZX", "bob", "", "hash").Validate())
}

func TestSubmission_Validate(t *testing.T) {
	s := &Submission{
		SubmissionID: "4b1c3d2e-0000-4000-8000-000000000000",
		UserID:       "01HZX",
		QuestionID:   "1",
		Username:     "bob",
		Code:         "class A {}",
		Score:        80,
	}
	assert.NoError(t, s.Validate())

	s.Code = ""
	s.Score = 120
	var verrs ValidationErrors
	require.True(t, errors.As(s.Validate(), &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, CodeMissingField, verrs[0].Code)
	assert.Equal(t, CodeOutOfRange, verrs[1].Code)
}

func TestTruncateCode(t *testing.T) {
	short := "public class Singleton {}"
	assert.Equal(t, short, TruncateCode(short))

	long := strings.Repeat("a", MaxCodeBytes+10)
	assert.Len(t, TruncateCode(long), MaxCodeBytes)

	// a multi-byte rune straddling the limit is dropped whole
	straddling := strings.Repeat("a", MaxCodeBytes-1) + "é"
	got := TruncateCode(straddling)
	assert.Len(t, got, MaxCodeBytes-1)
}

func TestDomainError(t *testing.T) {
	cause := errors.New("db down")
	err := NewPersistenceError("Failed to save submission", cause)

	assert.Equal(t, "Failed to save submission: db down", err.Error())
	assert.ErrorIs(t, err, cause)

	nf := NewUserNotFoundError("01HZX")
	assert.Equal(t, CodeUserNotFound, nf.Code)
	assert.Equal(t, "01HZX", nf.Context["user_id"])
}
