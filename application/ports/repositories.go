// Package ports defines the interfaces the application services depend on.
// Infrastructure provides the implementations; services never import them.
package ports

import (
	"context"
	"time"

	"moji-backend/domain/garden"
	"moji-backend/domain/journal"
	"moji-backend/domain/literature"
	"moji-backend/domain/user"
)

// UserRepository persists accounts and their aggregate stats.
type UserRepository interface {
	CreateUser(ctx context.Context, u *user.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	GetStats(ctx context.Context, userID int64) (*user.Stats, error)
	UpdateStats(ctx context.Context, s *user.Stats) error
}

// EntryRepository persists diary entries and their passage matches.
type EntryRepository interface {
	CreateEntry(ctx context.Context, e *journal.Entry) (int64, error)
	GetEntry(ctx context.Context, id int64) (*journal.Entry, error)
	ListEntries(ctx context.Context, userID int64, limit, offset int) ([]*journal.Entry, int, error)
	ListEntriesSince(ctx context.Context, userID int64, since time.Time) ([]*journal.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error

	CreateMatches(ctx context.Context, matches []*journal.Match) error
	ListMatchesByEntry(ctx context.Context, entryID int64) ([]*journal.Match, error)
}

// LiteratureRepository reads and appends the curated corpus.
type LiteratureRepository interface {
	ListPassages(ctx context.Context) ([]*literature.Passage, error)
	GetPassage(ctx context.Context, id int64) (*literature.Passage, error)
	CreatePassage(ctx context.Context, p *literature.Passage) (int64, error)
	CountPassages(ctx context.Context) (int, error)

	ListAuthors(ctx context.Context) ([]*literature.Author, error)
	GetAuthor(ctx context.Context, id int64) (*literature.Author, error)
	CreateAuthor(ctx context.Context, a *literature.Author) (int64, error)

	CreateWork(ctx context.Context, w *literature.Work) (int64, error)
}

// GardenRepository persists the per-user author plants.
type GardenRepository interface {
	GetPlant(ctx context.Context, userID, authorID int64) (*garden.Plant, error)
	ListPlants(ctx context.Context, userID int64) ([]*garden.Plant, error)
	CreatePlant(ctx context.Context, p *garden.Plant) (int64, error)
	UpdatePlant(ctx context.Context, p *garden.Plant) error
	CountPlants(ctx context.Context, userID int64) (int, error)
}
