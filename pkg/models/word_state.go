package models

import "fmt"

// WordState is the learning stage of a word, derived from its review history.
type WordState int

const (
	// StateNew means the word has never been answered
	StateNew WordState = iota
	// StateLearning means the word has been answered but is not yet mastered
	StateLearning
	// StateMastered means the word has been drilled enough and kept its ease
	StateMastered
)

var wordStateNames = [...]string{StateNew: "new", StateLearning: "learning", StateMastered: "mastered"}

// String returns the name of the state.
func (s WordState) String() string {
	if s >= StateNew && s <= StateMastered {
		return wordStateNames[s]
	}
	return fmt.Sprintf("WordState(%d)", int(s))
}

// State derives the learning stage from the review counters.
// A word is considered mastered after at least 5 reviews with the
// ease factor still at (or above) its starting value of 2.5.
func (s *ReviewStats) State() WordState {
	switch {
	case s.Attempts == 0:
		return StateNew
	case s.Attempts >= 5 && s.EaseFactor >= 2.5:
		return StateMastered
	default:
		return StateLearning
	}
}
