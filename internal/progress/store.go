// Package progress persists which words of which vocabulary set a user
// has learned, plus aggregate answer counters, through a durable
// key-value backend.
//
// A set is reachable under several aliases (its id and one or more path
// forms). Records are keyed internally by a canonical id and every alias
// maps onto it, so no alias can double-count or shadow another. Backend
// failures never propagate to the caller: the in-memory state is
// authoritative for the current process and write errors are only logged.
package progress

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/example/vocabtrain/internal/storage"
	"github.com/example/vocabtrain/pkg/models"
)

// Store owns one user's learning progress. One instance per active
// session; it is not safe for concurrent use and does not need to be:
// load, answer and save operations run to completion one at a time.
type Store struct {
	userID  string
	backend storage.Backend
	logger  *zap.Logger

	// records is keyed by canonical id; aliases maps every known
	// external name onto its canonical id. The indirection is what makes
	// alias-level deduplication trivial.
	records   map[string]map[string]struct{}
	aliases   map[string]string
	aggregate models.UserProgress
}

// learnedRecord is the persisted shape of one set's learned ids.
type learnedRecord struct {
	LearnedIDs []string `json:"learnedIds"`
}

// NewStore creates a progress store for the given user.
func NewStore(userID string, backend storage.Backend, logger *zap.Logger) *Store {
	return &Store{
		userID:  userID,
		backend: backend,
		logger:  logger,
		records: make(map[string]map[string]struct{}),
		aliases: make(map[string]string),
	}
}

func (s *Store) vocabKey(alias string) string {
	return s.userID + ":vocab:" + alias
}

func (s *Store) userKey() string {
	return s.userID
}

// resolve returns the canonical id for an external key, registering the
// alias and an empty record on first sight.
func (s *Store) resolve(key string) string {
	alias := Canonicalize(key)
	if canonical, ok := s.aliases[alias]; ok {
		return canonical
	}
	s.aliases[alias] = alias
	if s.records[alias] == nil {
		s.records[alias] = make(map[string]struct{})
	}
	return alias
}

// BindAlias declares that a set id and the path it was loaded from name
// the same logical set. If both already carry records they are merged
// under the id's canonical form.
func (s *Store) BindAlias(setID, path string) {
	canonical := s.resolve(setID)
	alias := Canonicalize(path)

	existing, known := s.aliases[alias]
	if !known {
		s.aliases[alias] = canonical
		return
	}
	if existing == canonical {
		return
	}
	// Merge the path-keyed record into the id-keyed one and repoint
	// every alias of the absorbed record.
	for id := range s.records[existing] {
		s.records[canonical][id] = struct{}{}
	}
	delete(s.records, existing)
	for a, c := range s.aliases {
		if c == existing {
			s.aliases[a] = canonical
		}
	}
}

// RecordLearned adds wordID to the set's learned record and persists the
// record under every known alias so that any of them reads back the same
// membership. Persistence failures are logged and swallowed.
func (s *Store) RecordLearned(ctx context.Context, setKey, wordID string) {
	canonical := s.resolve(setKey)
	if _, ok := s.records[canonical][wordID]; !ok {
		s.records[canonical][wordID] = struct{}{}
		s.aggregate.WordsLearned++
		s.persistAggregate(ctx)
	}
	s.persistRecord(ctx, canonical)
}

// LearnedIDs returns the sorted learned word ids for the set named by key.
func (s *Store) LearnedIDs(key string) []string {
	canonical := s.resolve(key)
	ids := make([]string, 0, len(s.records[canonical]))
	for id := range s.records[canonical] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsLearned reports whether wordID was recorded as learned for the set.
func (s *Store) IsLearned(key, wordID string) bool {
	_, ok := s.records[s.resolve(key)][wordID]
	return ok
}

// LoadForPath hydrates the record for a set path from the backend,
// probing each path variant in order and stopping at the first hit.
// No hit, a read failure or a corrupt payload all leave a fresh empty
// record: reads never fail user-visibly.
func (s *Store) LoadForPath(ctx context.Context, path string) {
	canonical := s.resolve(path)
	for _, variant := range PathVariants(path) {
		var rec learnedRecord
		err := s.backend.Load(ctx, s.vocabKey(variant), &rec)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			s.logger.Warn("progress read failed, continuing with in-memory state",
				zap.String("key", s.vocabKey(variant)), zap.Error(err))
			continue
		}
		for _, id := range rec.LearnedIDs {
			s.records[canonical][id] = struct{}{}
		}
		return
	}
}

// TotalLearned sums learned-word counts across all distinct records.
// Records shared under several aliases are counted once, because they
// exist once: aliases are pointers into the canonical table.
func (s *Store) TotalLearned() int {
	total := 0
	for _, rec := range s.records {
		total += len(rec)
	}
	return total
}

// RecordAnswer updates the aggregate counters for one answered review
// and persists them.
func (s *Store) RecordAnswer(ctx context.Context, correct bool) {
	s.aggregate.TotalAttempts++
	if correct {
		s.aggregate.CorrectAttempts++
	}
	s.persistAggregate(ctx)
}

// Aggregate returns a copy of the aggregate counters.
func (s *Store) Aggregate() models.UserProgress {
	return s.aggregate
}

// LoadAggregate hydrates the aggregate counters from the backend.
// Absent or corrupt records leave the zero value in place.
func (s *Store) LoadAggregate(ctx context.Context) {
	var agg models.UserProgress
	err := s.backend.Load(ctx, s.userKey(), &agg)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("aggregate read failed, continuing with in-memory state", zap.Error(err))
		return
	}
	s.aggregate = agg
}

// ResetAll clears all in-memory progress and deletes every backend key
// in this user's namespace. Returns false when the backend could not be
// fully cleaned; it never panics or raises.
func (s *Store) ResetAll(ctx context.Context) bool {
	s.records = make(map[string]map[string]struct{})
	s.aliases = make(map[string]string)
	s.aggregate = models.UserProgress{}

	ok := true
	keys, err := s.backend.Keys(ctx, s.userID+":")
	if err != nil {
		s.logger.Warn("failed to list progress keys", zap.Error(err))
		return false
	}
	for _, key := range keys {
		if err := s.backend.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete progress key", zap.String("key", key), zap.Error(err))
			ok = false
		}
	}
	if err := s.backend.Delete(ctx, s.userKey()); err != nil {
		s.logger.Warn("failed to delete aggregate record", zap.Error(err))
		ok = false
	}
	return ok
}

func (s *Store) persistRecord(ctx context.Context, canonical string) {
	rec := s.records[canonical]
	payload := learnedRecord{LearnedIDs: make([]string, 0, len(rec))}
	for id := range rec {
		payload.LearnedIDs = append(payload.LearnedIDs, id)
	}
	sort.Strings(payload.LearnedIDs)

	for alias, c := range s.aliases {
		if c != canonical {
			continue
		}
		if err := s.backend.Save(ctx, s.vocabKey(alias), payload); err != nil {
			s.logger.Warn("progress write failed, keeping in-memory state",
				zap.String("key", s.vocabKey(alias)), zap.Error(err))
		}
	}
}

func (s *Store) persistAggregate(ctx context.Context) {
	if err := s.backend.Save(ctx, s.userKey(), s.aggregate); err != nil {
		s.logger.Warn("aggregate write failed, keeping in-memory state", zap.Error(err))
	}
}
