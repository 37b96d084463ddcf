package services

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"moji-backend/application/ports"
	"moji-backend/pkg/common"
	"moji-backend/pkg/utils"
)

// StatsService derives the read-side aggregates: overview counters, the
// 30-day emotion curve, and the timeline feed.
type StatsService struct {
	entries ports.EntryRepository
	users   ports.UserRepository
	logger  *zap.Logger

	now func() time.Time
}

func NewStatsService(entries ports.EntryRepository, users ports.UserRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		entries: entries,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

// Overview is the headline counters for a user.
type Overview struct {
	TotalEntries     int `json:"totalEntries"`
	TotalWords       int `json:"totalWords"`
	StreakDays       int `json:"streakDays"`
	MaxStreakDays    int `json:"maxStreakDays"`
	AuthorsCollected int `json:"authorsCollected"`
}

func (s *StatsService) GetOverview(ctx context.Context, userID int64) (*Overview, error) {
	stats, err := s.users.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, total, err := s.entries.ListEntries(ctx, userID, 1, 0)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalEntries:     total,
		TotalWords:       stats.TotalWords,
		StreakDays:       stats.StreakDays,
		MaxStreakDays:    stats.MaxStreakDays,
		AuthorsCollected: stats.AuthorsCollected,
	}, nil
}

// CurvePoint is one day on the emotion curve: the day's dominant emotion and
// average intensity.
type CurvePoint struct {
	Date       string  `json:"date"`
	Emotion    string  `json:"emotion"`
	Intensity  float64 `json:"intensity"`
	EntryCount int     `json:"entryCount"`
}

// GetEmotionCurve groups the user's entries from the last days (default 30)
// by calendar day, ascending.
func (s *StatsService) GetEmotionCurve(ctx context.Context, userID int64, days int) ([]*CurvePoint, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)

	entries, err := s.entries.ListEntriesSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		intensitySum  float64
		count         int
		emotionCounts map[string]int
		firstSeen     map[string]int
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, e := range entries {
		day := utils.DayKey(e.CreatedAt)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{emotionCounts: map[string]int{}, firstSeen: map[string]int{}}
			buckets[day] = b
			order = append(order, day)
		}
		b.intensitySum += e.EmotionIntensity
		if _, seen := b.firstSeen[e.EmotionPrimary]; !seen {
			b.firstSeen[e.EmotionPrimary] = b.count
		}
		b.emotionCounts[e.EmotionPrimary]++
		b.count++
	}

	curve := make([]*CurvePoint, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		curve = append(curve, &CurvePoint{
			Date:       day,
			Emotion:    dominantEmotion(b.emotionCounts, b.firstSeen),
			Intensity:  b.intensitySum / float64(b.count),
			EntryCount: b.count,
		})
	}
	return curve, nil
}

// dominantEmotion picks the most frequent emotion of a day; frequency ties go
// to the emotion that appeared first.
func dominantEmotion(counts, firstSeen map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return firstSeen[names[i]] < firstSeen[names[j]]
	})
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// TimelineItem is one entry condensed for the timeline feed.
type TimelineItem struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	Emotion  string    `json:"emotion"`
	Weather  string    `json:"weather"`
	Keywords []string  `json:"keywords"`
	Preview  string    `json:"preview"`
}

// TimelinePage is one page of the timeline.
type TimelinePage struct {
	Timeline   []*TimelineItem       `json:"timeline"`
	Pagination common.PaginationInfo `json:"pagination"`
}

// GetTimeline returns a page of condensed entries, newest first. Previews
// truncate to 100 characters; keywords to the first three.
func (s *StatsService) GetTimeline(ctx context.Context, userID int64, page, limit int) (*TimelinePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, total, err := s.entries.ListEntries(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	items := make([]*TimelineItem, 0, len(entries))
	for _, e := range entries {
		keywords := e.Keywords
		if len(keywords) > 3 {
			keywords = keywords[:3]
		}
		items = append(items, &TimelineItem{
			ID:       e.ID,
			Date:     e.CreatedAt,
			Emotion:  e.EmotionPrimary,
			Weather:  e.WeatherType,
			Keywords: keywords,
			Preview:  preview(e.Content, previewLength),
		})
	}

	totalPages := (total + limit - 1) / limit
	return &TimelinePage{
		Timeline: items,
		Pagination: common.PaginationInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// preview truncates content to n characters, appending an ellipsis marker
// when anything was cut. Counts runes so multi-byte text is never split.
func preview(content string, n int) string {
	if utf8.RuneCountInString(content) <= n {
		return content
	}
	runes := []rune(content)
	return string(runes[:n]) + "..."
}
