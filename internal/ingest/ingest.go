package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/wordvault/internal/database"
)

// DefaultDistractorCacheSize is how many wrong-answer candidates are
// precomputed per translation.
const DefaultDistractorCacheSize = 6

// CaptureInput is one captured vocabulary item: a source-language word or
// phrase, its translation, and the page context it was selected on.
type CaptureInput struct {
	SourceText string
	SourceLang string
	TargetText string
	TargetLang string
	URL        string
	Highlight  string
}

// CaptureResult reports the rows a capture resolved to.
type CaptureResult struct {
	SourceLexemeID int64
	TargetLexemeID int64
	TranslationID  int64
	LearningID     int64
}

// Pipeline turns captured selections into lexeme/translation/learning rows
// ready for the scheduler. It owns row creation only; once a learning
// record exists, the grading engine is its sole writer.
type Pipeline struct {
	repo      *database.IngestRepository
	cacheSize int
}

// NewPipeline creates a pipeline backed by the given store.
func NewPipeline(store *database.Store) *Pipeline {
	return &Pipeline{
		repo:      database.NewIngestRepository(store),
		cacheSize: DefaultDistractorCacheSize,
	}
}

// Capture validates and stores one vocabulary item. The learning record
// starts in state New with due=now, so it surfaces in the next due query.
// The distractor cache refresh is best-effort; a failure there never undoes
// the capture.
func (p *Pipeline) Capture(ctx context.Context, in CaptureInput) (*CaptureResult, error) {
	in.SourceText = strings.TrimSpace(in.SourceText)
	in.TargetText = strings.TrimSpace(in.TargetText)
	if in.SourceText == "" || in.TargetText == "" {
		return nil, fmt.Errorf("capture requires source and target text")
	}
	if in.SourceLang == "" || in.TargetLang == "" {
		return nil, fmt.Errorf("capture requires source and target language codes")
	}

	rows, err := p.repo.Capture(ctx,
		in.SourceText, in.SourceLang,
		in.TargetText, in.TargetLang,
		in.URL, in.Highlight,
		time.Now().Unix(),
	)
	if err != nil {
		return nil, err
	}

	if err := p.repo.RefreshDistractorCache(ctx, rows.TranslationID, rows.TargetLexemeID, in.TargetLang, p.cacheSize); err != nil {
		log.Printf("ingest: failed to refresh distractor cache for translation %d: %v", rows.TranslationID, err)
	}

	return &CaptureResult{
		SourceLexemeID: rows.SourceLexemeID,
		TargetLexemeID: rows.TargetLexemeID,
		TranslationID:  rows.TranslationID,
		LearningID:     rows.LearningID,
	}, nil
}
