package models

import "fmt"

// Word represents a single vocabulary entry to be learned
type Word struct {
	ID              string      `json:"id,omitempty"`
	Target          string      `json:"target"`             // Word in the language being learned
	Native          string      `json:"native"`             // Translation into the user's language
	Examples        []string    `json:"examples,omitempty"` // Example sentences, in document order
	Tags            []string    `json:"tags,omitempty"`
	Transliteration string      `json:"transliteration,omitempty"` // Optional: reading aid for non-Latin scripts
	Image           string      `json:"image,omitempty"`           // Optional: image reference
	Stats           ReviewStats `json:"-"`
}

// ProgressKey returns the identifier used for learned-progress tracking.
// It must stay stable across reloads of the same underlying data: the
// explicit id wins, then the target text, then a positional fallback.
func (w *Word) ProgressKey(index int) string {
	if w.ID != "" {
		return w.ID
	}
	if w.Target != "" {
		return w.Target
	}
	return fmt.Sprintf("word-%d", index)
}
