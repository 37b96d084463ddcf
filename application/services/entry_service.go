package services

import (
	"context"
	"encoding/json"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moji-backend/application/ports"
	"moji-backend/domain/garden"
	"moji-backend/domain/journal"
	"moji-backend/domain/literature"
	"moji-backend/domain/matching"
	apperrors "moji-backend/pkg/errors"
	"moji-backend/pkg/utils"
)

const (
	// unknownAuthorName and unknownWorkTitle substitute missing attribution
	// when asking for a match reason.
	unknownAuthorName = "佚名"
	unknownWorkTitle  = "未知作品"

	previewLength = 100
)

// EntryService orchestrates the submission pipeline: analyze, persist, match,
// explain, grow the garden, update stats. Steps after entry creation degrade
// independently; a persisted entry is never rolled back.
type EntryService struct {
	entries    ports.EntryRepository
	users      ports.UserRepository
	ai         ports.AIGateway
	literature *LiteratureService
	garden     *GardenService
	logger     *zap.Logger
}

func NewEntryService(
	entries ports.EntryRepository,
	users ports.UserRepository,
	ai ports.AIGateway,
	literatureService *LiteratureService,
	gardenService *GardenService,
	logger *zap.Logger,
) *EntryService {
	return &EntryService{
		entries:    entries,
		users:      users,
		ai:         ai,
		literature: literatureService,
		garden:     gardenService,
		logger:     logger,
	}
}

// CreateEntryInput carries a diary submission. EmotionPrimary and
// EmotionSecondary let the user override the analysis labels.
type CreateEntryInput struct {
	Content          string   `json:"content" validate:"required"`
	EmotionPrimary   string   `json:"emotionPrimary" validate:"max=50"`
	EmotionSecondary []string `json:"emotionSecondary"`
	Images           []string `json:"images"`
}

// AnalysisSummary is the analysis slice echoed back to the client.
type AnalysisSummary struct {
	Emotions             []journal.EmotionScore `json:"emotions"`
	Keywords             []string               `json:"keywords"`
	Imagery              []string               `json:"imagery"`
	Scenes               []string               `json:"scenes"`
	PsychologicalInsight string                 `json:"psychologicalInsight"`
}

// PassageView is a matched passage with its attribution.
type PassageView struct {
	ID      int64       `json:"id"`
	Content string      `json:"content"`
	Author  *AuthorView `json:"author,omitempty"`
	Work    *WorkView   `json:"work,omitempty"`
}

type AuthorView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	PlantType string `json:"plantType,omitempty"`
}

type WorkView struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// MatchView is one ranked match in a submission response.
type MatchView struct {
	Rank        int          `json:"rank"`
	Passage     *PassageView `json:"passage"`
	MatchScore  float64      `json:"matchScore"`
	MatchReason string       `json:"matchReason"`
}

// SubmissionResult is the full response to a diary submission.
type SubmissionResult struct {
	Entry         *journal.Entry   `json:"entry"`
	Analysis      *AnalysisSummary `json:"analysis"`
	Matches       []*MatchView     `json:"matches"`
	GardenUpdates []*garden.Update `json:"gardenUpdates"`
}

// SubmitEntry runs the full pipeline for one diary submission.
func (s *EntryService) SubmitEntry(ctx context.Context, userID int64, in CreateEntryInput) (*SubmissionResult, error) {
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}

	// Correlates the log lines of one submission across pipeline steps.
	log := s.logger.With(
		zap.String("submissionId", uuid.NewString()),
		zap.Int64("userId", userID),
	)

	analysis := s.ai.AnalyzeEmotion(ctx, in.Content, in.Images)

	embedding := s.ai.GenerateEmbedding(ctx, in.Content)
	embeddingJSON, err := json.Marshal(embedding)
	if err != nil {
		embeddingJSON = []byte("[]")
	}

	entry := &journal.Entry{
		UserID:               userID,
		Content:              in.Content,
		EmotionPrimary:       analysis.PrimaryEmotion,
		EmotionSecondary:     analysis.EmotionNames(),
		EmotionIntensity:     analysis.EmotionIntensity,
		Keywords:             analysis.Keywords,
		Imagery:              analysis.Imagery,
		Scenes:               analysis.Scenes,
		Themes:               analysis.Themes,
		WeatherType:          analysis.WeatherType,
		PsychologicalInsight: analysis.PsychologicalInsight,
		Embedding:            string(embeddingJSON),
	}
	if in.EmotionPrimary != "" {
		entry.EmotionPrimary = in.EmotionPrimary
	}
	if len(in.EmotionSecondary) > 0 {
		entry.EmotionSecondary = in.EmotionSecondary
	}
	if len(in.Images) > 0 {
		entry.ImageURL = in.Images[0]
	}

	if _, err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	results := s.matchPassages(ctx, log, analysis)
	matchViews, err := s.saveMatches(ctx, entry, results)
	if err != nil {
		log.Error("failed to persist matches", zap.Int64("entryId", entry.ID), zap.Error(err))
		return nil, err
	}
	gardenUpdates, err := s.growGarden(ctx, userID, results)
	if err != nil {
		log.Error("failed to update garden", zap.Int64("entryId", entry.ID), zap.Error(err))
		return nil, err
	}
	s.updateStats(ctx, log, userID, entry)

	return &SubmissionResult{
		Entry: entry,
		Analysis: &AnalysisSummary{
			Emotions:             analysis.Emotions,
			Keywords:             analysis.Keywords,
			Imagery:              analysis.Imagery,
			Scenes:               analysis.Scenes,
			PsychologicalInsight: analysis.PsychologicalInsight,
		},
		Matches:       matchViews,
		GardenUpdates: gardenUpdates,
	}, nil
}

func (s *EntryService) matchPassages(ctx context.Context, log *zap.Logger, analysis *journal.EmotionAnalysis) []matching.Result {
	passages, err := s.literature.GetAllPassages(ctx)
	if err != nil {
		log.Error("failed to load corpus, skipping matching", zap.Error(err))
		return nil
	}
	if len(passages) == 0 {
		log.Warn("passage corpus is empty, nothing to match")
		return nil
	}
	return matching.RankPassages(analysis, passages)
}

// saveMatches persists the ranked matches. Unlike the AI steps, a storage
// failure here fails the submission; the entry itself is not rolled back.
func (s *EntryService) saveMatches(ctx context.Context, entry *journal.Entry, results []matching.Result) ([]*MatchView, error) {
	if len(results) == 0 {
		return []*MatchView{}, nil
	}

	matches := make([]*journal.Match, 0, len(results))
	views := make([]*MatchView, 0, len(results))
	for i, r := range results {
		authorName, workTitle := unknownAuthorName, unknownWorkTitle
		if r.Passage.Author != nil {
			authorName = r.Passage.Author.Name
		}
		if r.Passage.Work != nil {
			workTitle = r.Passage.Work.Title
		}

		reason := s.ai.GenerateMatchReason(ctx, entry.Content, r.Passage.Content, authorName, workTitle)

		matches = append(matches, &journal.Match{
			EntryID:           entry.ID,
			PassageID:         r.Passage.ID,
			MatchScore:        r.Score,
			MatchReason:       reason,
			EmotionSimilarity: r.EmotionSimilarity,
			KeywordOverlap:    r.KeywordOverlap,
			ImageryMatch:      r.ImageryMatch,
			Rank:              i + 1,
		})
		views = append(views, &MatchView{
			Rank:        i + 1,
			Passage:     passageView(r.Passage),
			MatchScore:  r.Score,
			MatchReason: reason,
		})
	}

	if err := s.entries.CreateMatches(ctx, matches); err != nil {
		return nil, err
	}
	return views, nil
}

// growGarden records one match per ranked result. Storage failures fail the
// submission, same as match persistence.
func (s *EntryService) growGarden(ctx context.Context, userID int64, results []matching.Result) ([]*garden.Update, error) {
	updates := make([]*garden.Update, 0, len(results))
	for _, r := range results {
		if r.Passage.Author == nil {
			continue
		}
		update, err := s.garden.RecordMatch(ctx, userID, r.Passage.Author.ID)
		if err != nil {
			return nil, err
		}
		update.AuthorName = r.Passage.Author.Name
		update.PlantType = r.Passage.Author.PlantType
		updates = append(updates, update)
	}
	return updates, nil
}

// updateStats folds the new entry into the user's counters. Failures are
// logged and swallowed; stats are derived data.
func (s *EntryService) updateStats(ctx context.Context, log *zap.Logger, userID int64, entry *journal.Entry) {
	stats, err := s.users.GetStats(ctx, userID)
	if err != nil {
		log.Error("failed to load user stats", zap.Error(err))
		return
	}

	stats.TotalWords += utf8.RuneCountInString(entry.Content)

	today := utils.DayKey(entry.CreatedAt)
	yesterday := utils.DayKey(entry.CreatedAt.AddDate(0, 0, -1))
	switch s.previousEntryDay(ctx, userID, entry.ID) {
	case today:
		// Second entry of the day; the streak already counts it.
	case yesterday:
		stats.StreakDays++
	default:
		stats.StreakDays = 1
	}
	if stats.StreakDays > stats.MaxStreakDays {
		stats.MaxStreakDays = stats.StreakDays
	}

	if n, err := s.garden.CollectedAuthors(ctx, userID); err == nil {
		stats.AuthorsCollected = n
	}

	if err := s.users.UpdateStats(ctx, stats); err != nil {
		log.Error("failed to update user stats", zap.Error(err))
	}
}

// previousEntryDay returns the day key of the user's most recent entry other
// than the one just created, or "" when there is none.
func (s *EntryService) previousEntryDay(ctx context.Context, userID, excludeEntryID int64) string {
	recent, _, err := s.entries.ListEntries(ctx, userID, 2, 0)
	if err != nil {
		return ""
	}
	for _, e := range recent {
		if e.ID != excludeEntryID {
			return utils.DayKey(e.CreatedAt)
		}
	}
	return ""
}

// EntryView is an entry with its matches attached for reads.
type EntryView struct {
	*journal.Entry
	Matches []*MatchDetail `json:"matches"`
}

// MatchDetail is a persisted match joined with its passage.
type MatchDetail struct {
	*journal.Match
	Passage *PassageView `json:"passage,omitempty"`
}

// ListEntries returns one page of the user's entries, newest first, with
// matches attached.
func (s *EntryService) ListEntries(ctx context.Context, userID int64, page, limit int) ([]*EntryView, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, total, err := s.entries.ListEntries(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*EntryView, 0, len(entries))
	for _, e := range entries {
		view, err := s.attachMatches(ctx, e)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// GetEntry returns one entry with matches. Users only see their own entries;
// someone else's entry reads as not found.
func (s *EntryService) GetEntry(ctx context.Context, userID, entryID int64) (*EntryView, error) {
	entry, err := s.entries.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.NewNotFoundError("entry")
	}
	return s.attachMatches(ctx, entry)
}

// DeleteEntry removes one of the user's entries and its matches.
func (s *EntryService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	entry, err := s.entries.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return apperrors.NewNotFoundError("entry")
	}
	return s.entries.DeleteEntry(ctx, entryID)
}

func (s *EntryService) attachMatches(ctx context.Context, entry *journal.Entry) (*EntryView, error) {
	matches, err := s.entries.ListMatchesByEntry(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	lookup := s.passageLookup(ctx)
	details := make([]*MatchDetail, 0, len(matches))
	for _, m := range matches {
		detail := &MatchDetail{Match: m}
		if p, ok := lookup[m.PassageID]; ok {
			detail.Passage = passageView(p)
		}
		details = append(details, detail)
	}
	return &EntryView{Entry: entry, Matches: details}, nil
}

// passageLookup indexes the cached corpus by passage id. A load failure
// degrades to matches without passage bodies.
func (s *EntryService) passageLookup(ctx context.Context) map[int64]*literature.Passage {
	passages, err := s.literature.GetAllPassages(ctx)
	if err != nil {
		s.logger.Error("failed to load corpus for match details", zap.Error(err))
		return nil
	}
	lookup := make(map[int64]*literature.Passage, len(passages))
	for _, p := range passages {
		lookup[p.ID] = p
	}
	return lookup
}

func passageView(p *literature.Passage) *PassageView {
	view := &PassageView{
		ID:      p.ID,
		Content: p.Content,
	}
	if p.Author != nil {
		view.Author = &AuthorView{
			ID:        p.Author.ID,
			Name:      p.Author.Name,
			Avatar:    p.Author.Avatar,
			PlantType: p.Author.PlantType,
		}
	}
	if p.Work != nil {
		view.Work = &WorkView{ID: p.Work.ID, Title: p.Work.Title}
	}
	return view
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < 10 {
		return apperrors.NewValidationError("content must be at least 10 characters")
	}
	if n > 5000 {
		return apperrors.NewValidationError("content must be at most 5000 characters")
	}
	return nil
}
