package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/template"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// testStore connects to the database named by TEST_DATABASE_URL, skipping
// the test when it is not set. The schema from migrations/ must be applied.
func testStore(t *testing.T) *Store {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	store, err := Connect(context.Background(), databaseURL)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestAttemptFromResult(t *testing.T) {
	result := &types.Result{
		TotalScore:       91.0,
		HandwritingScore: 100.0,
		PostureScore:     70.0,
		Grade:            types.GradeExcellent,
		OrderVerdict:     types.OrderVerdict{IsValid: true},
	}

	attempt := AttemptFromResult("user-1", "十", result, 12500*time.Millisecond)

	assert.NotEqual(t, uuid.Nil, attempt.ID)
	assert.Equal(t, "user-1", attempt.UserID)
	assert.Equal(t, "十", attempt.Glyph)
	assert.InDelta(t, 91.0, attempt.TotalScore, 1e-9)
	assert.Equal(t, types.GradeExcellent, attempt.Grade)
	assert.True(t, attempt.OrderValid)
	assert.Empty(t, attempt.Code)
	assert.InDelta(t, 12.5, attempt.TimeSpentSeconds, 1e-9)
}

func TestSaveAndQueryAttempts(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	userID := "it-" + uuid.NewString()

	for i, score := range []float64{72.5, 88.0, 91.0} {
		attempt := AttemptFromResult(userID, "十", &types.Result{
			TotalScore:       score,
			HandwritingScore: score,
			PostureScore:     100,
			Grade:            types.GradeGood,
			OrderVerdict:     types.OrderVerdict{IsValid: true},
		}, time.Duration(i+1)*time.Second)
		require.NoError(t, store.SaveAttempt(ctx, attempt))
	}

	attempts, err := store.RecentAttempts(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	for _, a := range attempts {
		assert.Equal(t, userID, a.UserID)
		assert.Equal(t, "十", a.Glyph)
		assert.False(t, a.CreatedAt.IsZero())
	}

	limited, err := store.RecentAttempts(ctx, userID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	stats, err := store.StatsForGlyph(ctx, userID, "十")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Attempts)
	assert.InDelta(t, 91.0, stats.BestScore, 1e-9)
	assert.InDelta(t, (72.5+88.0+91.0)/3, stats.MeanScore, 1e-6)
}

func TestStatsForGlyph_NoAttempts(t *testing.T) {
	store := testStore(t)

	stats, err := store.StatsForGlyph(context.Background(), "it-"+uuid.NewString(), "水")
	require.NoError(t, err)
	assert.Zero(t, stats.Attempts)
	assert.Zero(t, stats.BestScore)
	assert.Zero(t, stats.MeanScore)
}

func TestSaveAndLoadTemplate(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// Use a private-use rune so the roundtrip never collides with real data.
	glyph := string(rune(0xE000 + time.Now().UnixNano()%0x1000))
	medians := []types.Stroke{
		{{X: 0.1, Y: 0.5}, {X: 0.9, Y: 0.5}},
		{{X: 0.5, Y: 0.1}, {X: 0.5, Y: 0.9}},
	}

	id, err := store.SaveTemplate(ctx, &types.Character{
		Glyph:    glyph,
		Source:   SourceCustom,
		Medians:  medians,
		Outlines: []string{"M 0 512 L 1024 512"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	character, err := store.Load(ctx, glyph)
	require.NoError(t, err)
	assert.Equal(t, glyph, character.Glyph)
	assert.Equal(t, SourceCustom, character.Source)
	assert.Equal(t, medians, character.Medians)
	assert.Len(t, character.Outlines, 1)
}

func TestLoadTemplate_NotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Load(context.Background(), string(rune(0xF000)))
	assert.ErrorIs(t, err, template.ErrNotFound)
}

func TestSaveTemplate_RequiresMedians(t *testing.T) {
	// No database needed: the guard runs before any query.
	store := &Store{}

	_, err := store.SaveTemplate(context.Background(), &types.Character{Glyph: "十"})
	assert.Error(t, err)
}
