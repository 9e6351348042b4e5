package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/vocabtrain/internal/storage"
)

func newTestStore() (*Store, *storage.Memory) {
	mem := storage.NewMemory()
	return NewStore("user1", mem, zap.NewNop()), mem
}

func TestRecordLearnedPersistsUnderAllAliases(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore()

	store.BindAlias("set-a", "data/sets/a.json")
	store.RecordLearned(ctx, "set-a", "w1")

	for _, key := range []string{"user1:vocab:set-a", "user1:vocab:sets/a.json"} {
		var rec struct {
			LearnedIDs []string `json:"learnedIds"`
		}
		require.NoError(t, mem.Load(ctx, key, &rec), "record missing under %s", key)
		assert.Equal(t, []string{"w1"}, rec.LearnedIDs)
	}
}

func TestAliasIdempotence(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore()

	store.BindAlias("set-a", "data/sets/a.json")
	store.RecordLearned(ctx, "set-a", "w1")
	store.RecordLearned(ctx, "set-a", "w1") // recording twice must not duplicate

	// A fresh store reading back through any alias form sees w1 exactly once.
	for _, path := range []string{"data/sets/a.json", "/sets/a.json", "sets/a.json"} {
		fresh := NewStore("user1", mem, zap.NewNop())
		fresh.LoadForPath(ctx, path)
		assert.Equal(t, []string{"w1"}, fresh.LearnedIDs(path), "via alias %q", path)
	}
}

func TestRecordLearnedThroughEitherAlias(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	store.BindAlias("set-a", "sets/a.json")
	store.RecordLearned(ctx, "set-a", "w1")
	store.RecordLearned(ctx, "sets/a.json", "w2")

	assert.Equal(t, []string{"w1", "w2"}, store.LearnedIDs("set-a"))
	assert.Equal(t, []string{"w1", "w2"}, store.LearnedIDs("sets/a.json"))
	assert.True(t, store.IsLearned("set-a", "w2"))
}

func TestBindAliasMergesExistingRecords(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	// Progress recorded under the path before the id was ever seen.
	store.RecordLearned(ctx, "sets/a.json", "w1")
	store.RecordLearned(ctx, "set-a", "w2")
	store.BindAlias("set-a", "sets/a.json")

	assert.Equal(t, []string{"w1", "w2"}, store.LearnedIDs("set-a"))
	assert.Equal(t, 2, store.TotalLearned(), "merged records must collapse into one")
}

func TestLoadForPathProbesVariants(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	// Simulate a record written by an older run under the bare form.
	require.NoError(t, mem.Save(ctx, "user1:vocab:sets/b.json", map[string][]string{"learnedIds": {"w9"}}))

	for _, path := range []string{"data/sets/b.json", "/sets/b.json", "sets/b.json"} {
		store := NewStore("user1", mem, zap.NewNop())
		store.LoadForPath(ctx, path)
		assert.Equal(t, []string{"w9"}, store.LearnedIDs(path), "via %q", path)
	}
}

func TestLoadForPathMissingInitializesFresh(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	store.LoadForPath(ctx, "sets/new.json")
	assert.Empty(t, store.LearnedIDs("sets/new.json"))
	assert.Equal(t, 0, store.TotalLearned())
}

func TestLoadForPathDiscardsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore()
	mem.Seed("user1:vocab:sets/c.json", []byte("{not json"))

	store.LoadForPath(ctx, "sets/c.json")
	assert.Empty(t, store.LearnedIDs("sets/c.json"))
}

func TestTotalLearnedCountsSharedSetsOnce(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	store.BindAlias("set-a", "sets/a.json")
	store.RecordLearned(ctx, "set-a", "w1")
	store.RecordLearned(ctx, "sets/a.json", "w2")
	store.RecordLearned(ctx, "set-b", "w1")

	assert.Equal(t, 3, store.TotalLearned())
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore()

	store.BindAlias("set-a", "sets/a.json")
	store.RecordLearned(ctx, "set-a", "w1")
	store.RecordLearned(ctx, "set-b", "w2")
	store.RecordAnswer(ctx, true)

	assert.True(t, store.ResetAll(ctx))
	assert.Equal(t, 0, store.TotalLearned())
	assert.Equal(t, 0, store.Aggregate().TotalAttempts)

	keys, err := mem.Keys(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, keys, "backend namespace must be empty after reset")
}

func TestAggregatePersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore()

	store.RecordAnswer(ctx, true)
	store.RecordAnswer(ctx, true)
	store.RecordAnswer(ctx, false)

	agg := store.Aggregate()
	assert.Equal(t, 3, agg.TotalAttempts)
	assert.Equal(t, 2, agg.CorrectAttempts)
	assert.InDelta(t, 66.666, agg.Accuracy(), 0.01)

	fresh := NewStore("user1", mem, zap.NewNop())
	fresh.LoadAggregate(ctx)
	assert.Equal(t, agg, fresh.Aggregate())
}

// failingBackend errors on everything; progress must degrade, not fail.
type failingBackend struct{}

func (failingBackend) Save(context.Context, string, any) error { return errors.New("backend down") }
func (failingBackend) Load(context.Context, string, any) error { return errors.New("backend down") }
func (failingBackend) Delete(context.Context, string) error    { return errors.New("backend down") }
func (failingBackend) Close() error                            { return nil }
func (failingBackend) Keys(context.Context, string) ([]string, error) {
	return nil, errors.New("backend down")
}

func TestBackendFailuresDegradeToMemory(t *testing.T) {
	ctx := context.Background()
	store := NewStore("user1", failingBackend{}, zap.NewNop())

	store.LoadForPath(ctx, "sets/a.json")
	store.BindAlias("set-a", "sets/a.json")
	store.RecordLearned(ctx, "set-a", "w1")
	store.RecordAnswer(ctx, true)

	assert.True(t, store.IsLearned("set-a", "w1"))
	assert.Equal(t, 1, store.Aggregate().TotalAttempts)
	assert.False(t, store.ResetAll(ctx), "reset must report the failure")
	assert.Equal(t, 0, store.TotalLearned(), "in-memory state is still cleared")
}
