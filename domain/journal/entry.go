package journal

import "time"

// Entry is one user-authored diary submission together with the
// analysis-derived fields captured at creation time.
type Entry struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"userId"`
	Content              string    `json:"content"`
	EmotionPrimary       string    `json:"emotionPrimary"`
	EmotionSecondary     []string  `json:"emotionSecondary"`
	EmotionIntensity     float64   `json:"emotionIntensity"`
	Keywords             []string  `json:"keywords"`
	Imagery              []string  `json:"imagery"`
	Scenes               []string  `json:"scenes"`
	Themes               []string  `json:"themes"`
	WeatherType          string    `json:"weatherType"`
	PsychologicalInsight string    `json:"psychologicalInsight"`
	Embedding            string    `json:"-"`
	ImageURL             string    `json:"imageUrl,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Match is the persisted association of one Entry to one ranked Passage.
// Ranks for an entry form a contiguous sequence starting at 1, ordered by
// descending composite score.
type Match struct {
	ID                int64     `json:"id"`
	EntryID           int64     `json:"entryId"`
	PassageID         int64     `json:"passageId"`
	MatchScore        float64   `json:"matchScore"`
	MatchReason       string    `json:"matchReason"`
	EmotionSimilarity float64   `json:"emotionSimilarity"`
	KeywordOverlap    float64   `json:"keywordOverlap"`
	ImageryMatch      float64   `json:"imageryMatch"`
	Rank              int       `json:"rank"`
	CreatedAt         time.Time `json:"createdAt"`
}
