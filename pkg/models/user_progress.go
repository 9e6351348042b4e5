package models

// UserProgress aggregates answer counters across all sets for one user.
// It is mutated by every answered review regardless of which set it belongs to.
type UserProgress struct {
	TotalAttempts   int `json:"total_attempts"`
	CorrectAttempts int `json:"correct_attempts"`
	WordsLearned    int `json:"words_learned"`
}

// Accuracy returns the percentage of correct answers, 0 when nothing was answered.
func (p *UserProgress) Accuracy() float64 {
	if p.TotalAttempts == 0 {
		return 0
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts) * 100
}
