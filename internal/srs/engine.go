// Package srs implements the spaced-repetition heuristic: review
// schedule updates after each answer and selection of the next due word.
//
// The heuristic is a deliberate approximation of SM-2, not the real
// thing. Its constants are load-bearing: stored schedules were produced
// with them, so they must not be "corrected".
package srs

import (
	"math"
	"time"

	"github.com/example/vocabtrain/pkg/models"
)

const (
	// InitialEaseFactor is the ease assigned to a fresh word.
	InitialEaseFactor = 2.5
	// MinEaseFactor is the floor enforced on every update.
	MinEaseFactor = 1.3
	// easePenalty is subtracted from the ease factor on a wrong answer.
	easePenalty = 0.2
	// Priority weights, see priority().
	easeWeight     = 10
	attemptsWeight = 5

	day = 24 * time.Hour
)

// Engine updates review schedules and picks the next due word.
// The clock is injectable so schedules can be tested deterministically.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine running on the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a custom time source.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// CalculateNextReview updates the word's schedule after an answer.
// A correct answer grows the interval by the ease factor; a wrong one
// resets the interval to one day and penalizes the ease. The caller is
// responsible for incrementing Attempts/Correct exactly once per answer.
func (e *Engine) CalculateNextReview(stats *models.ReviewStats, correct bool) {
	now := e.now()
	if correct {
		stats.Interval *= stats.EaseFactor
		stats.DueDate = now.Add(daysToDuration(stats.Interval))
		return
	}
	stats.Interval = 1
	stats.EaseFactor -= easePenalty
	if stats.EaseFactor < MinEaseFactor {
		stats.EaseFactor = MinEaseFactor // не опускаем ниже 1.3
	}
	stats.DueDate = now.Add(day)
}

// NextWord returns the due word with the highest review priority, or nil
// when nothing is due. The word is returned by reference: the caller
// mutates its ReviewStats in place once the answer is recorded.
//
// Ties are resolved by stored set order, first match wins. Tests rely on
// that being deterministic.
func (e *Engine) NextWord(set *models.VocabularySet) *models.Word {
	now := e.now()
	var best *models.Word
	bestScore := math.Inf(-1)
	for i := range set.Words {
		w := &set.Words[i]
		if !w.Stats.IsDue(now) {
			continue
		}
		if score := priority(&w.Stats, now); score > bestScore {
			best = w
			bestScore = score
		}
	}
	return best
}

// priority scores a due word: overdue time dominates (rewards staleness),
// the ease term surfaces harder words sooner, and the attempts term
// suppresses words already heavily drilled so new material is not starved.
func priority(stats *models.ReviewStats, now time.Time) float64 {
	overdue := float64(now.Sub(stats.DueDate) / time.Millisecond)
	if overdue < 0 {
		overdue = 0
	}
	return overdue +
		(InitialEaseFactor-stats.EaseFactor)*easeWeight -
		float64(stats.Attempts)*attemptsWeight
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * float64(day))
}
