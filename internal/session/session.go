// Package session orchestrates one review loop over a vocabulary set:
// pick the next due word, reveal its answer, record the outcome.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/vocabtrain/internal/progress"
	"github.com/example/vocabtrain/internal/srs"
	"github.com/example/vocabtrain/pkg/models"
)

// ErrInvalidTransition is returned when an operation is called in the
// wrong state, including any operation on a completed session.
var ErrInvalidTransition = errors.New("session: invalid transition")

// State of the review loop.
type State int

const (
	// StateIdle - no current word yet
	StateIdle State = iota
	// StatePresenting - a word is shown, answer hidden
	StatePresenting
	// StateRevealed - answer shown, awaiting correct/incorrect
	StateRevealed
	// StateComplete - no due words remain; terminal
	StateComplete
)

var stateNames = [...]string{StateIdle: "idle", StatePresenting: "presenting", StateRevealed: "revealed", StateComplete: "complete"}

func (s State) String() string {
	if s >= StateIdle && s <= StateComplete {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session drives one review loop for one user over one set. A completed
// session cannot be restarted; create a fresh one.
type Session struct {
	engine *srs.Engine
	store  *progress.Store
	set    *models.VocabularySet

	state   State
	current *models.Word
}

// New creates an idle session. The caller should already have hydrated
// the store for the set's path and bound the path alias to the set id.
func New(engine *srs.Engine, store *progress.Store, set *models.VocabularySet) *Session {
	return &Session{
		engine: engine,
		store:  store,
		set:    set,
		state:  StateIdle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Current returns the word being presented, nil outside
// Presenting/Revealed.
func (s *Session) Current() *models.Word {
	return s.current
}

// NextWord advances to the next due word. Valid from Idle and
// Presenting; moves to Complete when nothing is due.
func (s *Session) NextWord() (*models.Word, error) {
	if s.state != StateIdle && s.state != StatePresenting {
		return nil, fmt.Errorf("%w: next word from %s", ErrInvalidTransition, s.state)
	}
	return s.advance(), nil
}

// ShowAnswer reveals the current word's translation.
func (s *Session) ShowAnswer() error {
	if s.state != StatePresenting {
		return fmt.Errorf("%w: show answer from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateRevealed
	return nil
}

// MarkAnswer records the outcome for the revealed word and advances to
// the next one (or Complete). The counters are incremented exactly once
// per answer here; the schedule update itself never touches them. The
// progress store is updated before the next word is chosen, so a word
// whose due date moved forward cannot reappear in the same tick.
func (s *Session) MarkAnswer(ctx context.Context, correct bool) (*models.Word, error) {
	if s.state != StateRevealed {
		return nil, fmt.Errorf("%w: mark answer from %s", ErrInvalidTransition, s.state)
	}
	word := s.current
	word.Stats.Attempts++
	if correct {
		word.Stats.Correct++
	}
	s.engine.CalculateNextReview(&word.Stats, correct)
	s.store.RecordAnswer(ctx, correct)
	if correct {
		s.store.RecordLearned(ctx, s.set.ID, word.ProgressKey(s.indexOf(word)))
	}
	s.state = StatePresenting
	return s.advance(), nil
}

func (s *Session) advance() *models.Word {
	word := s.engine.NextWord(s.set)
	if word == nil {
		s.state = StateComplete
		s.current = nil
		return nil
	}
	s.state = StatePresenting
	s.current = word
	return word
}

func (s *Session) indexOf(word *models.Word) int {
	for i := range s.set.Words {
		if &s.set.Words[i] == word {
			return i
		}
	}
	return -1
}
