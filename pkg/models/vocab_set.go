package models

import "time"

// VocabularySet is an ordered collection of words sharing a language.
// A set may be reachable under more than one external name: its canonical
// id and the file path(s) it was loaded from. Progress tracking must
// resolve all of them to the same record.
type VocabularySet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	Words     []Word    `json:"words"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DueCount returns how many words are eligible for review at the given instant.
func (s *VocabularySet) DueCount(now time.Time) int {
	count := 0
	for i := range s.Words {
		if s.Words[i].Stats.IsDue(now) {
			count++
		}
	}
	return count
}
