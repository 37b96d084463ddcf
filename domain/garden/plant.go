// Package garden models the per-user collection of author "plants" and the
// growth rule that turns cumulative match counts into stages.
package garden

import "time"

// Stage bounds. A plant never leaves this range and never moves backwards.
const (
	MinStage = 1
	MaxStage = 4
)

// stageThresholds maps match-count thresholds to stages: reaching
// thresholds[i] matches puts the plant at stage i+1.
var stageThresholds = [...]int{1, 2, 5, 10}

// StageForCount returns the growth stage for a cumulative match count,
// evaluated as the largest threshold not exceeding the count.
func StageForCount(matchCount int) int {
	for i := len(stageThresholds) - 1; i >= 0; i-- {
		if matchCount >= stageThresholds[i] {
			return i + 1
		}
	}
	return MinStage
}

// Plant is one row of a user's garden: exactly one per (user, author) pair.
type Plant struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	AuthorID    int64     `json:"authorId"`
	PlantStage  int       `json:"plantStage"`
	MatchCount  int       `json:"matchCount"`
	LastMatchAt time.Time `json:"lastMatchAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Joined author presentation fields, populated on garden reads.
	AuthorName  string `json:"authorName,omitempty"`
	PlantType   string `json:"plantType,omitempty"`
	PlantSymbol string `json:"plantSymbol,omitempty"`
}

// Update describes the outcome of recording one more match with an author.
type Update struct {
	AuthorID      int64  `json:"authorId"`
	AuthorName    string `json:"authorName"`
	PlantType     string `json:"plantType"`
	PreviousStage int    `json:"previousStage"`
	CurrentStage  int    `json:"currentStage"`
	IsNewPlant    bool   `json:"isNewPlant"`
}
