// Package vocab reads and writes vocabulary-set JSON documents.
package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/example/vocabtrain/pkg/models"
)

// Load reads and validates a vocabulary-set document from disk. Every
// word starts immediately due.
func Load(path string) (*models.VocabularySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read set file %s: %w", path, err)
	}
	return Parse(data, time.Now())
}

// Parse decodes and validates a vocabulary-set document, initializing
// review state for each word at the given instant.
func Parse(data []byte, now time.Time) (*models.VocabularySet, error) {
	var set models.VocabularySet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse set document: %w", err)
	}
	if err := validate(&set); err != nil {
		return nil, fmt.Errorf("invalid set document: %w", err)
	}
	for i := range set.Words {
		set.Words[i].Stats = models.NewReviewStats(now)
	}
	return &set, nil
}

func validate(set *models.VocabularySet) error {
	if err := validation.ValidateStruct(set,
		validation.Field(&set.ID, validation.Required),
		validation.Field(&set.Name, validation.Required),
		validation.Field(&set.Language, validation.Required),
		validation.Field(&set.Words, validation.Required),
	); err != nil {
		return err
	}
	for i := range set.Words {
		w := &set.Words[i]
		if err := validation.ValidateStruct(w,
			validation.Field(&w.Target, validation.Required),
			validation.Field(&w.Native, validation.Required),
		); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	return nil
}

// Export serializes the set in the source document shape. Review history
// is never part of the export.
func Export(set *models.VocabularySet) ([]byte, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export set %s: %w", set.ID, err)
	}
	return data, nil
}

// ExportToFile writes the exported document to path.
func ExportToFile(set *models.VocabularySet, path string) error {
	data, err := Export(set)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write set file %s: %w", path, err)
	}
	return nil
}
