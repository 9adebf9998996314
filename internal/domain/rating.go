package domain

import "math"

// RatingThreshold is the score at which a submission leaves the rating unchanged.
const RatingThreshold = 70

// RatingChange is the outcome of applying one scored submission to a user.
type RatingChange struct {
	Change    int
	OldRating float64
	NewRating float64
}

// PushBounded appends v and drops the oldest entries so that at most limit remain.
func PushBounded[T any](list []T, v T, limit int) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, v)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// RoundRating rounds to one decimal place and floors at zero.
func RoundRating(v float64) float64 {
	r := math.Round(v*10) / 10
	if r < 0 {
		return 0
	}
	return r
}

// ApplySubmissionResult folds a scored submission into the user's rating state.
// Credit is granted for every submission, including repeats of a completed question.
func ApplySubmissionResult(u *User, score int, questionID, submissionID string) RatingChange {
	u.Normalize()

	change := score - RatingThreshold
	oldRating := u.Rating
	newRating := RoundRating(oldRating + float64(change))

	u.Rating = newRating
	u.RatingHistory = PushBounded(u.RatingHistory, newRating, RatingHistoryLimit)
	if !u.HasCompletedChallenge(questionID) {
		u.CompletedChallenges = append(u.CompletedChallenges, questionID)
	}
	u.RecentSubmissions = PushBounded(u.RecentSubmissions, submissionID, RecentSubmissionsLimit)

	return RatingChange{Change: change, OldRating: oldRating, NewRating: newRating}
}
