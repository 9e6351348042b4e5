package models

import "time"

// ReviewStats tracks a word's review history for spaced repetition
type ReviewStats struct {
	Attempts   int       `json:"attempts"`    // Total answers recorded
	Correct    int       `json:"correct"`     // Correct answers (kept for reporting, not read by the scheduler)
	EaseFactor float64   `json:"ease_factor"` // Interval growth multiplier, never below 1.3
	Interval   float64   `json:"interval"`    // Days until the next review after a correct answer
	DueDate    time.Time `json:"due_date"`    // When the word next becomes eligible
}

// NewReviewStats returns the initial review state for a freshly loaded word.
// The word is immediately due.
func NewReviewStats(now time.Time) ReviewStats {
	return ReviewStats{
		EaseFactor: 2.5,
		Interval:   1,
		DueDate:    now,
	}
}

// IsDue reports whether the word is eligible for review at the given instant.
func (s *ReviewStats) IsDue(now time.Time) bool {
	return !s.DueDate.After(now)
}
