// Package literature holds the curated corpus entities: authors, their works,
// and the tagged passages the matching pipeline scores entries against.
// Structs are flat values with foreign-key ids; joins happen in the store.
package literature

import "time"

// Author is a collectible writer. PlantType/PlantSymbol map the author onto
// the garden metaphor shown to users.
type Author struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	NameEn      string    `json:"nameEn,omitempty"`
	Era         string    `json:"era,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	StyleTags   []string  `json:"styleTags,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	PlantType   string    `json:"plantType,omitempty"`
	PlantSymbol string    `json:"plantSymbol,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// Works is populated only by author-detail reads.
	Works []*Work `json:"works,omitempty"`
}

// Work is a titled piece an author wrote; passages optionally reference one.
type Work struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Title     string    `json:"title"`
	Type      string    `json:"type,omitempty"`
	Era       string    `json:"era,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Passage is one curated excerpt. The four tag sets are the vocabulary the
// scorer intersects with an entry's analysis; order is not significant.
// Passages are created at seed time or by administrative append and are never
// mutated by the matching flow.
type Passage struct {
	ID            int64     `json:"id"`
	AuthorID      int64     `json:"authorId"`
	WorkID        int64     `json:"workId,omitempty"`
	Content       string    `json:"content"`
	ContentLength int       `json:"contentLength"`
	EmotionTags   []string  `json:"emotionTags"`
	ImageryTags   []string  `json:"imageryTags"`
	SceneTags     []string  `json:"sceneTags"`
	ThemeTags     []string  `json:"themeTags"`
	Embedding     string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`

	// Joined on corpus reads.
	Author *Author `json:"author,omitempty"`
	Work   *Work   `json:"work,omitempty"`
}
