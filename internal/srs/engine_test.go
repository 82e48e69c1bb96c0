package srs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/pkg/models"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *database.Store) {
	t.Helper()
	store, err := database.Open(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewEngine(store), store
}

// seedLearning captures a pair and returns the learning id.
func seedLearning(t *testing.T, store *database.Store, src, tgt string, now time.Time) int64 {
	t.Helper()
	rows, err := database.NewIngestRepository(store).Capture(
		context.Background(), src, "en", tgt, "es", "", "", now.Unix())
	require.NoError(t, err)
	return rows.LearningID
}

func getRecord(t *testing.T, store *database.Store, id int64) *models.LearningRecord {
	t.Helper()
	rec, err := database.NewLearningRepository(store).GetByID(context.Background(), id)
	require.NoError(t, err)
	return rec
}

func TestGradeReviewNewCard(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	result, err := engine.GradeReview(context.Background(), id, Good, t0, "")
	require.NoError(t, err)
	assert.True(t, result.WasNew)

	rec := getRecord(t, store, id)
	assert.NotEqual(t, models.StateNew, rec.State, "first review leaves the New state")
	assert.Equal(t, int64(1), rec.Reps)
	assert.Equal(t, int64(0), rec.Lapses)
	assert.Greater(t, rec.Due, t0.Unix(), "due moves past the review time")
	require.NotNil(t, rec.LastReview)
	assert.Equal(t, t0.Unix(), *rec.LastReview)
}

func TestGradeReviewSuccessMonotonicity(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	// Easy on a New card graduates straight to Review.
	_, err := engine.GradeReview(context.Background(), id, Easy, t0, "")
	require.NoError(t, err)
	before := getRecord(t, store, id)
	require.Equal(t, models.StateReview, before.State)

	reviewTime := before.DueTime().Add(12 * time.Hour)
	for _, grade := range []fsrs.Rating{Good, Easy} {
		prev := getRecord(t, store, id)
		result, err := engine.GradeReview(context.Background(), id, grade, reviewTime, "")
		require.NoError(t, err)
		assert.False(t, result.WasNew)

		rec := getRecord(t, store, id)
		assert.Greater(t, rec.Due, prev.Due, "successful review pushes due strictly later")
		assert.GreaterOrEqual(t, rec.Stability, prev.Stability, "stability never drops on success")
		assert.Equal(t, models.StateReview, rec.State)

		reviewTime = rec.DueTime().Add(12 * time.Hour)
	}
}

func TestGradeReviewLapse(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	_, err := engine.GradeReview(context.Background(), id, Easy, t0, "")
	require.NoError(t, err)
	before := getRecord(t, store, id)
	require.Equal(t, models.StateReview, before.State)

	reviewTime := before.DueTime().Add(time.Hour)
	_, err = engine.GradeReview(context.Background(), id, Again, reviewTime, "no sé")
	require.NoError(t, err)

	rec := getRecord(t, store, id)
	assert.Equal(t, models.StateRelearning, rec.State)
	assert.Equal(t, before.Lapses+1, rec.Lapses)
	// Relearning reschedules within minutes, not days.
	assert.Less(t, rec.Due-reviewTime.Unix(), int64(3600))
	require.NotNil(t, rec.LastIncorrectChoice)
	assert.Equal(t, "no sé", *rec.LastIncorrectChoice)
}

func TestGradeReviewKeepsLastIncorrectChoice(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	_, err := engine.GradeReview(context.Background(), id, Again, t0, "gato")
	require.NoError(t, err)
	_, err = engine.GradeReview(context.Background(), id, Good, t0.Add(10*time.Minute), "")
	require.NoError(t, err)

	rec := getRecord(t, store, id)
	require.NotNil(t, rec.LastIncorrectChoice)
	assert.Equal(t, "gato", *rec.LastIncorrectChoice,
		"a correct answer keeps the previous wrong choice for distractor avoidance")
}

func TestGradeReviewNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.GradeReview(context.Background(), 9999, Good, t0, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGradeReviewInvalidGrade(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	for _, grade := range []fsrs.Rating{0, 5, -1} {
		_, err := engine.GradeReview(context.Background(), id, grade, t0, "")
		assert.ErrorIs(t, err, ErrInvalidGrade)
	}

	// Nothing was written.
	rec := getRecord(t, store, id)
	assert.Equal(t, models.StateNew, rec.State)
	assert.Nil(t, rec.LastReview)
}

func TestGradeReviewConcurrentDistinctIDs(t *testing.T) {
	engine, store := newTestEngine(t)
	ids := []int64{
		seedLearning(t, store, "dog", "perro", t0),
		seedLearning(t, store, "cat", "gato", t0),
		seedLearning(t, store, "house", "casa", t0),
		seedLearning(t, store, "bread", "pan", t0),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = engine.GradeReview(context.Background(), id, Good, t0, "")
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "grading id %d", ids[i])
		assert.Equal(t, int64(1), getRecord(t, store, ids[i]).Reps)
	}
}

func TestGradeReviewSameIDConcurrent(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	// Grading is a read-modify-write of one row; without per-id
	// serialization concurrent grades would lose updates.
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.GradeReview(context.Background(),
				id, Good, t0.Add(time.Duration(i)*time.Minute), "")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "goroutine %d", i)
	}
	assert.Equal(t, int64(n), getRecord(t, store, id).Reps,
		"every concurrent review must land, none lost")
}

func TestGradeReviewSameIDSequential(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	// Serialized grading of the same id: every review lands.
	when := t0
	for i := 0; i < 5; i++ {
		_, err := engine.GradeReview(context.Background(), id, Good, when, "")
		require.NoError(t, err)
		when = when.Add(time.Hour)
	}
	assert.Equal(t, int64(5), getRecord(t, store, id).Reps)
}

func TestPreview(t *testing.T) {
	engine, store := newTestEngine(t)
	id := seedLearning(t, store, "dog", "perro", t0)

	preview, err := engine.Preview(context.Background(), id, t0)
	require.NoError(t, err)
	require.Len(t, preview, 4)
	// Harder grades never schedule later than easier ones on a new card.
	assert.False(t, preview[Again].Due.After(preview[Good].Due))
	assert.False(t, preview[Good].Due.After(preview[Easy].Due))

	// Preview must not persist anything.
	rec := getRecord(t, store, id)
	assert.Equal(t, models.StateNew, rec.State)
	assert.Equal(t, int64(0), rec.Reps)

	_, err = engine.Preview(context.Background(), 9999, t0)
	assert.True(t, errors.Is(err, ErrNotFound))
}
