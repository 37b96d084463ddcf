package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moji-backend/domain/journal"
	"moji-backend/domain/user"
)

func newStatsFixture() (*StatsService, *fakeEntryRepo, *fakeUserRepo) {
	entries := newFakeEntryRepo()
	users := newFakeUserRepo()
	svc := NewStatsService(entries, users, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc, entries, users
}

func addEntry(t *testing.T, repo *fakeEntryRepo, userID int64, createdAt time.Time, emotion string, intensity float64) *journal.Entry {
	t.Helper()
	e := &journal.Entry{
		UserID:           userID,
		Content:          "一段足够长的日记内容",
		EmotionPrimary:   emotion,
		EmotionIntensity: intensity,
		CreatedAt:        createdAt,
	}
	_, err := repo.CreateEntry(context.Background(), e)
	require.NoError(t, err)
	return e
}

func TestGetOverview(t *testing.T) {
	svc, entries, users := newStatsFixture()
	ctx := context.Background()

	users.stats[1] = &user.Stats{
		UserID:           1,
		TotalWords:       340,
		StreakDays:       3,
		MaxStreakDays:    7,
		AuthorsCollected: 2,
	}
	day := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	addEntry(t, entries, 1, day, "平静", 0.5)
	addEntry(t, entries, 1, day.Add(time.Hour), "快乐", 0.7)

	overview, err := svc.GetOverview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalEntries)
	assert.Equal(t, 340, overview.TotalWords)
	assert.Equal(t, 3, overview.StreakDays)
	assert.Equal(t, 7, overview.MaxStreakDays)
	assert.Equal(t, 2, overview.AuthorsCollected)
}

func TestGetEmotionCurve_GroupsByDay(t *testing.T) {
	svc, entries, _ := newStatsFixture()
	ctx := context.Background()

	day1 := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)
	addEntry(t, entries, 1, day1, "快乐", 0.8)
	addEntry(t, entries, 1, day1.Add(2*time.Hour), "快乐", 0.6)
	addEntry(t, entries, 1, day1.Add(4*time.Hour), "悲伤", 0.4)
	addEntry(t, entries, 1, day2, "平静", 0.5)

	curve, err := svc.GetEmotionCurve(ctx, 1, 30)
	require.NoError(t, err)
	require.Len(t, curve, 2)

	assert.Equal(t, "2025-06-10", curve[0].Date)
	assert.Equal(t, "快乐", curve[0].Emotion)
	assert.InDelta(t, 0.6, curve[0].Intensity, 1e-9)
	assert.Equal(t, 3, curve[0].EntryCount)

	assert.Equal(t, "2025-06-12", curve[1].Date)
	assert.Equal(t, "平静", curve[1].Emotion)
	assert.Equal(t, 1, curve[1].EntryCount)
}

func TestGetEmotionCurve_TieGoesToFirstSeen(t *testing.T) {
	svc, entries, _ := newStatsFixture()
	ctx := context.Background()

	day := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	addEntry(t, entries, 1, day, "悲伤", 0.4)
	addEntry(t, entries, 1, day.Add(time.Hour), "快乐", 0.8)

	curve, err := svc.GetEmotionCurve(ctx, 1, 30)
	require.NoError(t, err)
	require.Len(t, curve, 1)
	assert.Equal(t, "悲伤", curve[0].Emotion)
}

func TestGetEmotionCurve_WindowExcludesOldEntries(t *testing.T) {
	svc, entries, _ := newStatsFixture()
	ctx := context.Background()

	addEntry(t, entries, 1, time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), "快乐", 0.8)
	addEntry(t, entries, 1, time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC), "平静", 0.5)

	curve, err := svc.GetEmotionCurve(ctx, 1, 30)
	require.NoError(t, err)
	require.Len(t, curve, 1)
	assert.Equal(t, "2025-06-14", curve[0].Date)
}

func TestGetTimeline_PreviewAndKeywords(t *testing.T) {
	svc, entries, _ := newStatsFixture()
	ctx := context.Background()

	long := strings.Repeat("字", 150)
	e := &journal.Entry{
		UserID:         1,
		Content:        long,
		EmotionPrimary: "平静",
		WeatherType:    "多云",
		Keywords:       []string{"一", "二", "三", "四", "五"},
		CreatedAt:      time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC),
	}
	_, err := entries.CreateEntry(ctx, e)
	require.NoError(t, err)

	page, err := svc.GetTimeline(ctx, 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Timeline, 1)

	item := page.Timeline[0]
	assert.Equal(t, strings.Repeat("字", 100)+"...", item.Preview)
	assert.Equal(t, []string{"一", "二", "三"}, item.Keywords)
	assert.Equal(t, "平静", item.Emotion)
	assert.Equal(t, "多云", item.Weather)
}

func TestGetTimeline_ShortContentNotTruncated(t *testing.T) {
	svc, entries, _ := newStatsFixture()
	ctx := context.Background()

	addEntry(t, entries, 1, time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC), "平静", 0.5)

	page, err := svc.GetTimeline(ctx, 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Timeline, 1)
	assert.False(t, strings.HasSuffix(page.Timeline[0].Preview, "..."))
}

func TestGetTimeline_Pagination(t *testing.T) {
	svc, entries, _ := newStatsFixture()
	ctx := context.Background()

	base := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		addEntry(t, entries, 1, base.Add(time.Duration(i)*time.Hour), "平静", 0.5)
	}

	page, err := svc.GetTimeline(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Timeline, 2)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.Page)
}
