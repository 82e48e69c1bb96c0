package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/pkg/models"
)

func newTestPipeline(t *testing.T) (*Pipeline, *database.Store) {
	t.Helper()
	store, err := database.Open(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewPipeline(store), store
}

func TestCaptureCreatesAllRows(t *testing.T) {
	p, store := newTestPipeline(t)

	res, err := p.Capture(context.Background(), CaptureInput{
		SourceText: "  dog ",
		SourceLang: "en",
		TargetText: "perro",
		TargetLang: "es",
		URL:        "https://example.com/article",
		Highlight:  "the dog barked",
	})
	require.NoError(t, err)

	lex, err := database.NewLexemeRepository(store).GetByID(context.Background(), res.SourceLexemeID)
	require.NoError(t, err)
	assert.Equal(t, "dog", lex.Text, "text is trimmed before storage")

	rec, err := database.NewLearningRepository(store).GetByID(context.Background(), res.LearningID)
	require.NoError(t, err)
	assert.Equal(t, models.StateNew, rec.State)

	encounters, err := database.NewEncounterRepository(store).ListByLearningID(context.Background(), res.LearningID)
	require.NoError(t, err)
	require.Len(t, encounters, 1)
	assert.Equal(t, "https://example.com/article", encounters[0].URL)
	assert.Equal(t, "the dog barked", encounters[0].HighlightedText)
}

func TestCaptureIdempotentPerPair(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	in := CaptureInput{
		SourceText: "dog", SourceLang: "en",
		TargetText: "perro", TargetLang: "es",
	}
	first, err := p.Capture(ctx, in)
	require.NoError(t, err)
	second, err := p.Capture(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.SourceLexemeID, second.SourceLexemeID)
	assert.Equal(t, first.TargetLexemeID, second.TargetLexemeID)
	assert.Equal(t, first.TranslationID, second.TranslationID)
	assert.Equal(t, first.LearningID, second.LearningID)
}

func TestCaptureValidation(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Capture(ctx, CaptureInput{SourceText: "  ", SourceLang: "en", TargetText: "x", TargetLang: "es"})
	assert.Error(t, err)

	_, err = p.Capture(ctx, CaptureInput{SourceText: "dog", SourceLang: "", TargetText: "perro", TargetLang: "es"})
	assert.Error(t, err)
}

func TestCaptureRefreshesDistractorCache(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	base := []CaptureInput{
		{SourceText: "cat", SourceLang: "en", TargetText: "gato", TargetLang: "es"},
		{SourceText: "house", SourceLang: "en", TargetText: "casa", TargetLang: "es"},
	}
	for _, in := range base {
		_, err := p.Capture(ctx, in)
		require.NoError(t, err)
	}

	res, err := p.Capture(ctx, CaptureInput{
		SourceText: "dog", SourceLang: "en", TargetText: "perro", TargetLang: "es",
	})
	require.NoError(t, err)

	tr, err := database.NewTranslationRepository(store).GetByID(ctx, res.TranslationID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"gato", "casa"}, []string(tr.Distractors))
	assert.NotContains(t, tr.Distractors, "perro")
}
