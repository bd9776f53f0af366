package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooksLoad(t *testing.T) {
	bks := Books()
	require.NotEmpty(t, bks)

	for _, b := range bks {
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.Title)
		assert.Greater(t, b.QuestionCount(), 0, "book %s has no questions", b.ID)
	}
}

func TestBookByID(t *testing.T) {
	b := BookByID("serene-lotus")
	require.NotNil(t, b)
	assert.Equal(t, "Serene Lotus", b.Title)

	assert.Nil(t, BookByID("no-such-book"))
}

func TestEverySectionPopulated(t *testing.T) {
	for _, b := range Books() {
		for _, s := range AllSections() {
			assert.NotEmpty(t, b.QuestionsBySection(s), "book %s section %s", b.ID, s)
		}
	}
}

func TestQuestionInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range Books() {
		for _, q := range b.AllQuestions() {
			require.NotEmpty(t, q.ID)
			assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
			seen[q.ID] = true

			assert.True(t, Valid(q.Section), "question %s has unknown section %q", q.ID, q.Section)
			assert.Equal(t, 1, strings.Count(q.Text, BlankMarker),
				"question %s must contain exactly one blank marker", q.ID)
			assert.NotEmpty(t, q.Correct, "question %s has no accepted answers", q.ID)
		}
	}
}

func TestAllQuestionsOrderedBySection(t *testing.T) {
	b := BookByID("serene-lotus")
	require.NotNil(t, b)

	order := make(map[Section]int)
	for i, s := range AllSections() {
		order[s] = i
	}

	last := -1
	for _, q := range b.AllQuestions() {
		require.GreaterOrEqual(t, order[q.Section], last)
		last = order[q.Section]
	}
}

func TestSectionDisplayNames(t *testing.T) {
	for _, s := range AllSections() {
		assert.NotEqual(t, string(s), "", DisplayName(s))
		assert.True(t, Valid(s))
	}
	assert.False(t, Valid(Section("geometry")))
	assert.Equal(t, "Word Formation", DisplayName(SectionWordFormation))
}
