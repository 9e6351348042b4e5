package vocab

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const sampleDoc = `{
	"id": "animals-de",
	"name": "Animals",
	"language": "de",
	"words": [
		{
			"id": "w1",
			"target": "Hund",
			"native": "dog",
			"examples": ["Der Hund bellt.", "Ein großer Hund."],
			"tags": ["animals", "common"],
			"transliteration": "hunt"
		},
		{"target": "Katze", "native": "cat"}
	]
}`

func TestParseValidDocument(t *testing.T) {
	set, err := Parse([]byte(sampleDoc), t0)
	require.NoError(t, err)

	assert.Equal(t, "animals-de", set.ID)
	assert.Equal(t, "de", set.Language)
	require.Len(t, set.Words, 2)

	first := set.Words[0]
	assert.Equal(t, "Hund", first.Target)
	assert.Equal(t, []string{"Der Hund bellt.", "Ein großer Hund."}, first.Examples)
	assert.Equal(t, []string{"animals", "common"}, first.Tags)

	// Every word starts immediately due with default scheduling state.
	for _, w := range set.Words {
		assert.Equal(t, 2.5, w.Stats.EaseFactor)
		assert.Equal(t, 1.0, w.Stats.Interval)
		assert.True(t, w.Stats.DueDate.Equal(t0))
		assert.Equal(t, 0, w.Stats.Attempts)
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{"id": `},
		{"missing language", `{"id":"x","name":"X","words":[{"target":"a","native":"b"}]}`},
		{"no words", `{"id":"x","name":"X","language":"de","words":[]}`},
		{"word missing native", `{"id":"x","name":"X","language":"de","words":[{"target":"a"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), t0)
			assert.Error(t, err)
		})
	}
}

func TestExportOmitsReviewHistory(t *testing.T) {
	set, err := Parse([]byte(sampleDoc), t0)
	require.NoError(t, err)
	set.Words[0].Stats.Attempts = 7

	data, err := Export(set)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"target": "Hund"`)
	assert.Contains(t, out, `"transliteration": "hunt"`)
	assert.False(t, strings.Contains(out, "attempts"), "review history must not be exported")
	assert.False(t, strings.Contains(out, "due_date"), "review history must not be exported")
}

func TestExportParseRoundTrip(t *testing.T) {
	set, err := Parse([]byte(sampleDoc), t0)
	require.NoError(t, err)

	data, err := Export(set)
	require.NoError(t, err)

	again, err := Parse(data, t0)
	require.NoError(t, err)
	assert.Equal(t, set.ID, again.ID)
	require.Len(t, again.Words, len(set.Words))
	assert.Equal(t, set.Words[0].Target, again.Words[0].Target)
}
