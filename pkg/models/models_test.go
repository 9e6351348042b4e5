package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	p := UserProgress{}
	assert.Equal(t, 0.0, p.Accuracy(), "no attempts means zero accuracy, not NaN")

	p = UserProgress{TotalAttempts: 4, CorrectAttempts: 3}
	assert.Equal(t, 75.0, p.Accuracy())
}

func TestWordStateDerivation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name     string
		attempts int
		ease     float64
		want     WordState
	}{
		{"fresh word", 0, 2.5, StateNew},
		{"one attempt", 1, 2.5, StateLearning},
		{"drilled but struggling", 8, 1.9, StateLearning},
		{"drilled and easy", 5, 2.5, StateMastered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := NewReviewStats(now)
			stats.Attempts = tc.attempts
			stats.EaseFactor = tc.ease
			assert.Equal(t, tc.want, stats.State())
		})
	}
}

func TestProgressKey(t *testing.T) {
	w := Word{ID: "w1", Target: "Hund"}
	assert.Equal(t, "w1", w.ProgressKey(3))

	w = Word{Target: "Hund"}
	assert.Equal(t, "Hund", w.ProgressKey(3))

	w = Word{}
	assert.Equal(t, "word-3", w.ProgressKey(3))
}

func TestDueCount(t *testing.T) {
	now := time.Now()
	set := VocabularySet{Words: []Word{
		{Target: "a", Stats: NewReviewStats(now.Add(-time.Hour))},
		{Target: "b", Stats: NewReviewStats(now.Add(time.Hour))},
		{Target: "c", Stats: NewReviewStats(now)},
	}}
	assert.Equal(t, 2, set.DueCount(now))
}
