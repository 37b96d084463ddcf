package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"unicode/utf8"

	"moji-backend/domain/literature"
	apperrors "moji-backend/pkg/errors"
)

// LiteratureStore implements ports.LiteratureRepository.
type LiteratureStore struct {
	db *DB
}

func NewLiteratureStore(db *DB) *LiteratureStore {
	return &LiteratureStore{db: db}
}

const passageJoinQuery = `
	SELECT p.id, p.author_id, COALESCE(p.work_id, 0), p.content, p.content_length,
		p.emotion_tags, p.imagery_tags, p.scene_tags, p.theme_tags, p.embedding, p.created_at,
		a.id, a.name, a.name_en, a.era, a.nationality, a.style_tags, a.bio, a.avatar,
		a.plant_type, a.plant_symbol, a.created_at,
		COALESCE(w.id, 0), COALESCE(w.author_id, 0), COALESCE(w.title, ''),
		COALESCE(w.type, ''), COALESCE(w.era, ''), COALESCE(w.created_at, '')
	FROM passages p
	JOIN authors a ON a.id = p.author_id
	LEFT JOIN works w ON w.id = p.work_id`

// ListPassages loads the whole corpus with authors and works joined, ordered
// by passage id. The matching flow depends on this ordering for stable ties.
func (s *LiteratureStore) ListPassages(ctx context.Context) ([]*literature.Passage, error) {
	rows, err := s.db.QueryContext(ctx, passageJoinQuery+` ORDER BY p.id ASC`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list passages", err)
	}
	defer rows.Close()

	var passages []*literature.Passage
	for rows.Next() {
		p, err := scanPassage(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan passage", err)
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list passages", err)
	}
	return passages, nil
}

func (s *LiteratureStore) GetPassage(ctx context.Context, id int64) (*literature.Passage, error) {
	row := s.db.QueryRowContext(ctx, passageJoinQuery+` WHERE p.id = ?`, id)
	p, err := scanPassage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("passage")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get passage", err)
	}
	return p, nil
}

func (s *LiteratureStore) CreatePassage(ctx context.Context, p *literature.Passage) (int64, error) {
	if p.ContentLength == 0 {
		p.ContentLength = utf8.RuneCountInString(p.Content)
	}
	now := time.Now()

	var workID interface{}
	if p.WorkID != 0 {
		workID = p.WorkID
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO passages (author_id, work_id, content, content_length,
			emotion_tags, imagery_tags, scene_tags, theme_tags, embedding, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.AuthorID, workID, p.Content, p.ContentLength,
		marshalList(p.EmotionTags), marshalList(p.ImageryTags),
		marshalList(p.SceneTags), marshalList(p.ThemeTags),
		emptyListIfBlank(p.Embedding), formatTime(now))
	if err != nil {
		return 0, apperrors.NewDatabaseError("create passage", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseError("create passage", err)
	}
	p.ID = id
	p.CreatedAt = now
	return id, nil
}

func (s *LiteratureStore) CountPassages(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n); err != nil {
		return 0, apperrors.NewDatabaseError("count passages", err)
	}
	return n, nil
}

func (s *LiteratureStore) ListAuthors(ctx context.Context) ([]*literature.Author, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, name_en, era, nationality, style_tags, bio, avatar,
			plant_type, plant_symbol, created_at
		 FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list authors", err)
	}
	defer rows.Close()

	var authors []*literature.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan author", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list authors", err)
	}
	return authors, nil
}

// GetAuthor returns one author with their works attached.
func (s *LiteratureStore) GetAuthor(ctx context.Context, id int64) (*literature.Author, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, name_en, era, nationality, style_tags, bio, avatar,
			plant_type, plant_symbol, created_at
		 FROM authors WHERE id = ?`, id)
	a, err := scanAuthor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("author")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get author", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author_id, title, type, era, created_at FROM works WHERE author_id = ? ORDER BY id ASC`, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list works", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w literature.Work
		var createdAt string
		if err := rows.Scan(&w.ID, &w.AuthorID, &w.Title, &w.Type, &w.Era, &createdAt); err != nil {
			return nil, apperrors.NewDatabaseError("scan work", err)
		}
		w.CreatedAt = parseTime(createdAt)
		a.Works = append(a.Works, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list works", err)
	}
	return a, nil
}

func (s *LiteratureStore) CreateAuthor(ctx context.Context, a *literature.Author) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO authors (name, name_en, era, nationality, style_tags, bio, avatar,
			plant_type, plant_symbol, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.NameEn, a.Era, a.Nationality, marshalList(a.StyleTags), a.Bio, a.Avatar,
		a.PlantType, a.PlantSymbol, formatTime(now))
	if err != nil {
		return 0, apperrors.NewDatabaseError("create author", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseError("create author", err)
	}
	a.ID = id
	a.CreatedAt = now
	return id, nil
}

func (s *LiteratureStore) CreateWork(ctx context.Context, w *literature.Work) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO works (author_id, title, type, era, created_at) VALUES (?, ?, ?, ?, ?)`,
		w.AuthorID, w.Title, w.Type, w.Era, formatTime(now))
	if err != nil {
		return 0, apperrors.NewDatabaseError("create work", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseError("create work", err)
	}
	w.ID = id
	w.CreatedAt = now
	return id, nil
}

func scanAuthor(row rowScanner) (*literature.Author, error) {
	var a literature.Author
	var styleTags, createdAt string
	err := row.Scan(&a.ID, &a.Name, &a.NameEn, &a.Era, &a.Nationality, &styleTags,
		&a.Bio, &a.Avatar, &a.PlantType, &a.PlantSymbol, &createdAt)
	if err != nil {
		return nil, err
	}
	a.StyleTags = unmarshalList(styleTags)
	a.CreatedAt = parseTime(createdAt)
	return &a, nil
}

func scanPassage(row rowScanner) (*literature.Passage, error) {
	var p literature.Passage
	var a literature.Author
	var w literature.Work
	var pEmotion, pImagery, pScene, pTheme string
	var pCreated, aStyle, aCreated, wCreated string

	err := row.Scan(&p.ID, &p.AuthorID, &p.WorkID, &p.Content, &p.ContentLength,
		&pEmotion, &pImagery, &pScene, &pTheme, &p.Embedding, &pCreated,
		&a.ID, &a.Name, &a.NameEn, &a.Era, &a.Nationality, &aStyle, &a.Bio, &a.Avatar,
		&a.PlantType, &a.PlantSymbol, &aCreated,
		&w.ID, &w.AuthorID, &w.Title, &w.Type, &w.Era, &wCreated)
	if err != nil {
		return nil, err
	}

	p.EmotionTags = unmarshalList(pEmotion)
	p.ImageryTags = unmarshalList(pImagery)
	p.SceneTags = unmarshalList(pScene)
	p.ThemeTags = unmarshalList(pTheme)
	p.CreatedAt = parseTime(pCreated)

	a.StyleTags = unmarshalList(aStyle)
	a.CreatedAt = parseTime(aCreated)
	p.Author = &a

	if w.ID != 0 {
		w.CreatedAt = parseTime(wCreated)
		p.Work = &w
	}
	return &p, nil
}

func emptyListIfBlank(s string) string {
	if s == "" {
		return "[]"
	}
	return s
}
