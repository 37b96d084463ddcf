package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"moji-backend/domain/garden"
	apperrors "moji-backend/pkg/errors"
)

// GardenStore implements ports.GardenRepository.
type GardenStore struct {
	db *DB
}

func NewGardenStore(db *DB) *GardenStore {
	return &GardenStore{db: db}
}

const plantJoinQuery = `
	SELECT g.id, g.user_id, g.author_id, g.plant_stage, g.match_count,
		g.last_match_at, g.created_at, g.updated_at,
		a.name, a.plant_type, a.plant_symbol
	FROM gardens g
	JOIN authors a ON a.id = g.author_id`

func (s *GardenStore) GetPlant(ctx context.Context, userID, authorID int64) (*garden.Plant, error) {
	row := s.db.QueryRowContext(ctx, plantJoinQuery+` WHERE g.user_id = ? AND g.author_id = ?`, userID, authorID)
	p, err := scanPlant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("plant")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get plant", err)
	}
	return p, nil
}

func (s *GardenStore) ListPlants(ctx context.Context, userID int64) ([]*garden.Plant, error) {
	rows, err := s.db.QueryContext(ctx, plantJoinQuery+` WHERE g.user_id = ? ORDER BY g.match_count DESC, g.id ASC`, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list plants", err)
	}
	defer rows.Close()

	var plants []*garden.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan plant", err)
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list plants", err)
	}
	return plants, nil
}

func (s *GardenStore) CreatePlant(ctx context.Context, p *garden.Plant) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO gardens (user_id, author_id, plant_stage, match_count, last_match_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.AuthorID, p.PlantStage, p.MatchCount,
		formatTime(p.LastMatchAt), formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError("plant already exists for author")
		}
		return 0, apperrors.NewDatabaseError("create plant", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseError("create plant", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return id, nil
}

func (s *GardenStore) UpdatePlant(ctx context.Context, p *garden.Plant) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE gardens SET plant_stage = ?, match_count = ?, last_match_at = ?, updated_at = ?
		 WHERE user_id = ? AND author_id = ?`,
		p.PlantStage, p.MatchCount, formatTime(p.LastMatchAt), formatTime(time.Now()),
		p.UserID, p.AuthorID)
	if err != nil {
		return apperrors.NewDatabaseError("update plant", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewDatabaseError("update plant", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("plant")
	}
	return nil
}

func (s *GardenStore) CountPlants(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gardens WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, apperrors.NewDatabaseError("count plants", err)
	}
	return n, nil
}

func scanPlant(row rowScanner) (*garden.Plant, error) {
	var p garden.Plant
	var lastMatchAt, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.UserID, &p.AuthorID, &p.PlantStage, &p.MatchCount,
		&lastMatchAt, &createdAt, &updatedAt,
		&p.AuthorName, &p.PlantType, &p.PlantSymbol)
	if err != nil {
		return nil, err
	}
	p.LastMatchAt = parseTime(lastMatchAt)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
