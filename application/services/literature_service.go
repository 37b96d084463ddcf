// Package services holds the application layer: use cases composed from the
// repository and AI ports, free of transport concerns.
package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"moji-backend/application/ports"
	"moji-backend/domain/literature"
	apperrors "moji-backend/pkg/errors"
)

// corpusCacheTTL bounds how stale the in-memory passage corpus may get.
const corpusCacheTTL = 5 * time.Minute

// LiteratureService serves the curated corpus. The full passage list is
// cached in memory because the matching flow reads it on every submission.
type LiteratureService struct {
	repo   ports.LiteratureRepository
	logger *zap.Logger

	now func() time.Time

	mu        sync.RWMutex
	passages  []*literature.Passage
	cachedAt  time.Time
	cacheWarm bool
}

func NewLiteratureService(repo ports.LiteratureRepository, logger *zap.Logger) *LiteratureService {
	return &LiteratureService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetAllPassages returns the corpus with authors and works joined, serving
// from cache while it is fresh.
func (s *LiteratureService) GetAllPassages(ctx context.Context) ([]*literature.Passage, error) {
	s.mu.RLock()
	if s.cacheWarm && s.now().Sub(s.cachedAt) < corpusCacheTTL {
		passages := s.passages
		s.mu.RUnlock()
		return passages, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have reloaded while we waited for the lock.
	if s.cacheWarm && s.now().Sub(s.cachedAt) < corpusCacheTTL {
		return s.passages, nil
	}

	passages, err := s.repo.ListPassages(ctx)
	if err != nil {
		return nil, err
	}
	s.passages = passages
	s.cachedAt = s.now()
	s.cacheWarm = true
	s.logger.Info("passage corpus loaded", zap.Int("count", len(passages)))
	return passages, nil
}

// InvalidateCache drops the cached corpus so the next read hits the store.
func (s *LiteratureService) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passages = nil
	s.cacheWarm = false
	s.logger.Info("passage corpus cache invalidated")
}

func (s *LiteratureService) GetAllAuthors(ctx context.Context) ([]*literature.Author, error) {
	return s.repo.ListAuthors(ctx)
}

func (s *LiteratureService) GetAuthor(ctx context.Context, id int64) (*literature.Author, error) {
	return s.repo.GetAuthor(ctx, id)
}

func (s *LiteratureService) GetPassage(ctx context.Context, id int64) (*literature.Passage, error) {
	return s.repo.GetPassage(ctx, id)
}

// CreateAuthorInput carries the administrative author-creation fields.
type CreateAuthorInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	NameEn      string   `json:"nameEn" validate:"max=100"`
	Era         string   `json:"era" validate:"max=50"`
	Nationality string   `json:"nationality" validate:"max=50"`
	StyleTags   []string `json:"styleTags"`
	Bio         string   `json:"bio"`
	Avatar      string   `json:"avatar"`
	PlantType   string   `json:"plantType" validate:"max=50"`
	PlantSymbol string   `json:"plantSymbol" validate:"max=10"`
}

func (s *LiteratureService) CreateAuthor(ctx context.Context, in CreateAuthorInput) (*literature.Author, error) {
	author := &literature.Author{
		Name:        in.Name,
		NameEn:      in.NameEn,
		Era:         in.Era,
		Nationality: in.Nationality,
		StyleTags:   in.StyleTags,
		Bio:         in.Bio,
		Avatar:      in.Avatar,
		PlantType:   in.PlantType,
		PlantSymbol: in.PlantSymbol,
	}
	if _, err := s.repo.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// CreateWorkInput carries the administrative work-creation fields.
type CreateWorkInput struct {
	AuthorID int64  `json:"authorId" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required,max=200"`
	Type     string `json:"type" validate:"max=50"`
	Era      string `json:"era" validate:"max=50"`
}

func (s *LiteratureService) CreateWork(ctx context.Context, in CreateWorkInput) (*literature.Work, error) {
	if _, err := s.repo.GetAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	work := &literature.Work{
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Type:     in.Type,
		Era:      in.Era,
	}
	if _, err := s.repo.CreateWork(ctx, work); err != nil {
		return nil, err
	}
	return work, nil
}

// CreatePassageInput carries the administrative passage-creation fields.
type CreatePassageInput struct {
	AuthorID    int64    `json:"authorId" validate:"required,gt=0"`
	WorkID      int64    `json:"workId"`
	Content     string   `json:"content" validate:"required"`
	EmotionTags []string `json:"emotionTags"`
	ImageryTags []string `json:"imageryTags"`
	SceneTags   []string `json:"sceneTags"`
	ThemeTags   []string `json:"themeTags"`
}

// CreatePassage appends a passage and invalidates the corpus cache so the
// next matching run sees it.
func (s *LiteratureService) CreatePassage(ctx context.Context, in CreatePassageInput) (*literature.Passage, error) {
	if _, err := s.repo.GetAuthor(ctx, in.AuthorID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("author does not exist")
		}
		return nil, err
	}

	passage := &literature.Passage{
		AuthorID:    in.AuthorID,
		WorkID:      in.WorkID,
		Content:     in.Content,
		EmotionTags: in.EmotionTags,
		ImageryTags: in.ImageryTags,
		SceneTags:   in.SceneTags,
		ThemeTags:   in.ThemeTags,
	}
	if _, err := s.repo.CreatePassage(ctx, passage); err != nil {
		return nil, err
	}

	s.InvalidateCache()
	return passage, nil
}
