package services

import (
	"context"
	"sort"
	"time"

	"moji-backend/domain/garden"
	"moji-backend/domain/journal"
	"moji-backend/domain/literature"
	"moji-backend/domain/user"
	apperrors "moji-backend/pkg/errors"
)

// In-memory repository fakes shared by the service tests.

type fakeGardenRepo struct {
	plants map[[2]int64]*garden.Plant
	nextID int64

	createErr error
}

func newFakeGardenRepo() *fakeGardenRepo {
	return &fakeGardenRepo{plants: map[[2]int64]*garden.Plant{}}
}

func (r *fakeGardenRepo) GetPlant(_ context.Context, userID, authorID int64) (*garden.Plant, error) {
	p, ok := r.plants[[2]int64{userID, authorID}]
	if !ok {
		return nil, apperrors.NewNotFoundError("plant")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeGardenRepo) ListPlants(_ context.Context, userID int64) ([]*garden.Plant, error) {
	var out []*garden.Plant
	for _, p := range r.plants {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchCount > out[j].MatchCount })
	return out, nil
}

func (r *fakeGardenRepo) CreatePlant(_ context.Context, p *garden.Plant) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	key := [2]int64{p.UserID, p.AuthorID}
	if _, exists := r.plants[key]; exists {
		return 0, apperrors.NewConflictError("plant already exists for author")
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.plants[key] = &cp
	return p.ID, nil
}

func (r *fakeGardenRepo) UpdatePlant(_ context.Context, p *garden.Plant) error {
	key := [2]int64{p.UserID, p.AuthorID}
	if _, ok := r.plants[key]; !ok {
		return apperrors.NewNotFoundError("plant")
	}
	cp := *p
	r.plants[key] = &cp
	return nil
}

func (r *fakeGardenRepo) CountPlants(_ context.Context, userID int64) (int, error) {
	n := 0
	for _, p := range r.plants {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeLiteratureRepo struct {
	passages      []*literature.Passage
	authors       map[int64]*literature.Author
	listCalls     int
	nextPassageID int64
}

func newFakeLiteratureRepo(passages ...*literature.Passage) *fakeLiteratureRepo {
	r := &fakeLiteratureRepo{authors: map[int64]*literature.Author{}}
	for _, p := range passages {
		r.nextPassageID = p.ID
		r.passages = append(r.passages, p)
		if p.Author != nil {
			r.authors[p.Author.ID] = p.Author
		}
	}
	return r
}

func (r *fakeLiteratureRepo) ListPassages(_ context.Context) ([]*literature.Passage, error) {
	r.listCalls++
	return r.passages, nil
}

func (r *fakeLiteratureRepo) GetPassage(_ context.Context, id int64) (*literature.Passage, error) {
	for _, p := range r.passages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("passage")
}

func (r *fakeLiteratureRepo) CreatePassage(_ context.Context, p *literature.Passage) (int64, error) {
	r.nextPassageID++
	p.ID = r.nextPassageID
	r.passages = append(r.passages, p)
	return p.ID, nil
}

func (r *fakeLiteratureRepo) CountPassages(_ context.Context) (int, error) {
	return len(r.passages), nil
}

func (r *fakeLiteratureRepo) ListAuthors(_ context.Context) ([]*literature.Author, error) {
	var out []*literature.Author
	for _, a := range r.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeLiteratureRepo) GetAuthor(_ context.Context, id int64) (*literature.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("author")
	}
	return a, nil
}

func (r *fakeLiteratureRepo) CreateAuthor(_ context.Context, a *literature.Author) (int64, error) {
	a.ID = int64(len(r.authors) + 1)
	r.authors[a.ID] = a
	return a.ID, nil
}

func (r *fakeLiteratureRepo) CreateWork(_ context.Context, w *literature.Work) (int64, error) {
	w.ID = 1
	return w.ID, nil
}

type fakeEntryRepo struct {
	entries map[int64]*journal.Entry
	matches map[int64][]*journal.Match
	nextID  int64

	createMatchesErr error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{
		entries: map[int64]*journal.Entry{},
		matches: map[int64][]*journal.Match{},
	}
}

func (r *fakeEntryRepo) CreateEntry(_ context.Context, e *journal.Entry) (int64, error) {
	r.nextID++
	e.ID = r.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cp := *e
	r.entries[e.ID] = &cp
	return e.ID, nil
}

func (r *fakeEntryRepo) GetEntry(_ context.Context, id int64) (*journal.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("entry")
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntryRepo) userEntries(userID int64) []*journal.Entry {
	var out []*journal.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeEntryRepo) ListEntries(_ context.Context, userID int64, limit, offset int) ([]*journal.Entry, int, error) {
	all := r.userEntries(userID)
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *fakeEntryRepo) ListEntriesSince(_ context.Context, userID int64, since time.Time) ([]*journal.Entry, error) {
	var out []*journal.Entry
	for _, e := range r.userEntries(userID) {
		if !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeEntryRepo) DeleteEntry(_ context.Context, id int64) error {
	if _, ok := r.entries[id]; !ok {
		return apperrors.NewNotFoundError("entry")
	}
	delete(r.entries, id)
	delete(r.matches, id)
	return nil
}

func (r *fakeEntryRepo) CreateMatches(_ context.Context, matches []*journal.Match) error {
	if r.createMatchesErr != nil {
		return r.createMatchesErr
	}
	for _, m := range matches {
		r.matches[m.EntryID] = append(r.matches[m.EntryID], m)
	}
	return nil
}

func (r *fakeEntryRepo) ListMatchesByEntry(_ context.Context, entryID int64) ([]*journal.Match, error) {
	return r.matches[entryID], nil
}

type fakeUserRepo struct {
	users map[int64]*user.User
	stats map[int64]*user.Stats
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*user.User{}, stats: map[int64]*user.Stats{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *user.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return 0, apperrors.NewConflictError("username or email already registered")
		}
	}
	u.ID = int64(len(r.users) + 1)
	r.users[u.ID] = u
	r.stats[u.ID] = &user.Stats{UserID: u.ID}
	return u.ID, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user")
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user")
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user")
}

func (r *fakeUserRepo) GetStats(_ context.Context, userID int64) (*user.Stats, error) {
	s, ok := r.stats[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user stats")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeUserRepo) UpdateStats(_ context.Context, s *user.Stats) error {
	cp := *s
	r.stats[s.UserID] = &cp
	return nil
}

// fakeAI is an AIGateway whose behavior is switched by failing.
type fakeAI struct {
	failing     bool
	analysis    *journal.EmotionAnalysis
	reasonCalls int
}

func (f *fakeAI) AnalyzeEmotion(_ context.Context, _ string, _ []string) *journal.EmotionAnalysis {
	if f.failing || f.analysis == nil {
		return journal.DefaultAnalysis()
	}
	return f.analysis
}

func (f *fakeAI) GenerateMatchReason(_ context.Context, _, _, _, _ string) string {
	f.reasonCalls++
	if f.failing {
		return "这段文字与你的心情产生了深深的共鸣。"
	}
	return "共鸣点在于夜色与孤独。"
}

func (f *fakeAI) GenerateEmbedding(_ context.Context, _ string) []float64 {
	return make([]float64, 1024)
}
