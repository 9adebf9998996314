package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySubmissionResult_RatingArithmetic(t *testing.T) {
	tests := []struct {
		name       string
		oldRating  float64
		score      int
		wantChange int
		wantRating float64
	}{
		{"high score raises rating", 10, 85, 15, 25},
		{"threshold score keeps rating", 42.5, 70, 0, 42.5},
		{"low score lowers rating", 50, 40, -30, 20},
		{"rating floors at zero", 10, 30, -40, 0},
		{"fresh user with low score", 0, 0, -70, 0},
		{"perfect score", 0, 100, 30, 30},
		{"rounds to one decimal", 12.34, 71, 1, 13.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUser("01HZX", "alice", "", "hash")
			u.Rating = tt.oldRating

			rc := ApplySubmissionResult(u, tt.score, "q1", "sub-1")

			assert.Equal(t, tt.wantChange, rc.Change)
			assert.Equal(t, tt.oldRating, rc.OldRating)
			assert.InDelta(t, tt.wantRating, rc.NewRating, 1e-9)
			assert.InDelta(t, tt.wantRating, u.Rating, 1e-9)
			assert.GreaterOrEqual(t, u.Rating, 0.0)
		})
	}
}

func TestApplySubmissionResult_RatingHistoryWindow(t *testing.T) {
	u := NewUser("01HZX", "alice", "", "hash")
	var applied []float64
	for i := 0; i < 7; i++ {
		rc := ApplySubmissionResult(u, 80, fmt.Sprintf("q%d", i), fmt.Sprintf("s%d", i))
		applied = append(applied, rc.NewRating)
	}

	assert.Len(t, u.RatingHistory, RatingHistoryLimit)
	assert.Equal(t, applied[len(applied)-RatingHistoryLimit:], u.RatingHistory)
	assert.Equal(t, []float64{30, 40, 50, 60, 70}, u.RatingHistory)
}

func TestApplySubmissionResult_RecentSubmissionsWindow(t *testing.T) {
	u := NewUser("01HZX", "alice", "", "hash")
	for i := 1; i <= 5; i++ {
		ApplySubmissionResult(u, 70, "q1", fmt.Sprintf("s%d", i))
	}
	assert.Equal(t, []string{"s3", "s4", "s5"}, u.RecentSubmissions)
}

func TestApplySubmissionResult_ResubmissionStillEarnsCredit(t *testing.T) {
	u := NewUser("01HZX", "alice", "", "hash")

	first := ApplySubmissionResult(u, 90, "q7", "s1")
	second := ApplySubmissionResult(u, 90, "q7", "s2")

	assert.Equal(t, []string{"q7"}, u.CompletedChallenges)
	assert.Equal(t, 20.0, first.NewRating)
	assert.Equal(t, 40.0, second.NewRating)
	assert.Equal(t, []float64{20, 40}, u.RatingHistory)
}

func TestApplySubmissionResult_NilListsAreDefaulted(t *testing.T) {
	u := &User{ID: "01HZX", Username: "legacy"}

	ApplySubmissionResult(u, 75, "q1", "s1")

	assert.Equal(t, []float64{5}, u.RatingHistory)
	assert.Equal(t, []string{"q1"}, u.CompletedChallenges)
	assert.Equal(t, []string{"s1"}, u.RecentSubmissions)
	assert.Equal(t, []string{}, u.RecentLessons)
}

func TestPushBounded(t *testing.T) {
	original := []int{1, 2, 3}
	got := PushBounded(original, 4, 3)

	assert.Equal(t, []int{2, 3, 4}, got)
	assert.Equal(t, []int{1, 2, 3}, original, "input must not be modified")

	assert.Equal(t, []string{"a"}, PushBounded([]string(nil), "a", 3))
	assert.Equal(t, []int{1, 2, 3, 4}, PushBounded([]int{1, 2, 3}, 4, 0), "non-positive limit keeps everything")
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 0.0, RoundRating(-3.2))
	assert.Equal(t, 12.3, RoundRating(12.34))
	assert.Equal(t, 12.4, RoundRating(12.36))
}
