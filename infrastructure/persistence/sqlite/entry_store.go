package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"moji-backend/domain/journal"
	apperrors "moji-backend/pkg/errors"
)

// EntryStore implements ports.EntryRepository.
type EntryStore struct {
	db *DB
}

func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

func (s *EntryStore) CreateEntry(ctx context.Context, e *journal.Entry) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (user_id, content, emotion_primary, emotion_secondary, emotion_intensity,
			keywords, imagery, scenes, themes, weather_type, psychological_insight,
			embedding, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Content, e.EmotionPrimary, marshalList(e.EmotionSecondary), e.EmotionIntensity,
		marshalList(e.Keywords), marshalList(e.Imagery), marshalList(e.Scenes), marshalList(e.Themes),
		e.WeatherType, e.PsychologicalInsight, e.Embedding, e.ImageURL,
		formatTime(now), formatTime(now))
	if err != nil {
		return 0, apperrors.NewDatabaseError("create entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseError("create entry", err)
	}
	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
	return id, nil
}

const entryColumns = `id, user_id, content, emotion_primary, emotion_secondary, emotion_intensity,
	keywords, imagery, scenes, themes, weather_type, psychological_insight,
	embedding, image_url, created_at, updated_at`

func (s *EntryStore) GetEntry(ctx context.Context, id int64) (*journal.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("entry")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get entry", err)
	}
	return e, nil
}

func (s *EntryStore) ListEntries(ctx context.Context, userID int64, limit, offset int) ([]*journal.Entry, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewDatabaseError("count entries", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list entries", err)
	}
	defer rows.Close()

	entries := make([]*journal.Entry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, apperrors.NewDatabaseError("scan entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewDatabaseError("list entries", err)
	}
	return entries, total, nil
}

func (s *EntryStore) ListEntriesSince(ctx context.Context, userID int64, since time.Time) ([]*journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ? AND created_at >= ? ORDER BY created_at ASC`,
		userID, formatTime(since))
	if err != nil {
		return nil, apperrors.NewDatabaseError("list entries since", err)
	}
	defer rows.Close()

	var entries []*journal.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list entries since", err)
	}
	return entries, nil
}

func (s *EntryStore) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewDatabaseError("delete entry", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewDatabaseError("delete entry", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("entry")
	}
	return nil
}

func (s *EntryStore) CreateMatches(ctx context.Context, matches []*journal.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("create matches", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, m := range matches {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO matches (entry_id, passage_id, match_score, match_reason,
				emotion_similarity, keyword_overlap, imagery_match, rank, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.EntryID, m.PassageID, m.MatchScore, m.MatchReason,
			m.EmotionSimilarity, m.KeywordOverlap, m.ImageryMatch, m.Rank, formatTime(now))
		if err != nil {
			return apperrors.NewDatabaseError("create match", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			m.ID = id
		}
		m.CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("create matches", err)
	}
	return nil
}

func (s *EntryStore) ListMatchesByEntry(ctx context.Context, entryID int64) ([]*journal.Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entry_id, passage_id, match_score, match_reason,
			emotion_similarity, keyword_overlap, imagery_match, rank, created_at
		 FROM matches WHERE entry_id = ? ORDER BY rank ASC`, entryID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list matches", err)
	}
	defer rows.Close()

	var matches []*journal.Match
	for rows.Next() {
		var m journal.Match
		var createdAt string
		if err := rows.Scan(&m.ID, &m.EntryID, &m.PassageID, &m.MatchScore, &m.MatchReason,
			&m.EmotionSimilarity, &m.KeywordOverlap, &m.ImageryMatch, &m.Rank, &createdAt); err != nil {
			return nil, apperrors.NewDatabaseError("scan match", err)
		}
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list matches", err)
	}
	return matches, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*journal.Entry, error) {
	var e journal.Entry
	var secondary, keywords, imagery, scenes, themes string
	var createdAt, updatedAt string
	err := row.Scan(&e.ID, &e.UserID, &e.Content, &e.EmotionPrimary, &secondary, &e.EmotionIntensity,
		&keywords, &imagery, &scenes, &themes, &e.WeatherType, &e.PsychologicalInsight,
		&e.Embedding, &e.ImageURL, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.EmotionSecondary = unmarshalList(secondary)
	e.Keywords = unmarshalList(keywords)
	e.Imagery = unmarshalList(imagery)
	e.Scenes = unmarshalList(scenes)
	e.Themes = unmarshalList(themes)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}
