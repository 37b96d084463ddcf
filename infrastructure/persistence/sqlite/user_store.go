package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"moji-backend/domain/user"
	apperrors "moji-backend/pkg/errors"
)

// UserStore implements ports.UserRepository.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, u *user.User) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, nickname, avatar, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Nickname, u.Avatar, formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError("username or email already registered")
		}
		return 0, apperrors.NewDatabaseError("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseError("create user", err)
	}

	// Stats row is created together with the account.
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO user_stats (user_id, updated_at) VALUES (?, ?)`,
		id, formatTime(now)); err != nil {
		return 0, apperrors.NewDatabaseError("create user stats", err)
	}

	u.ID = id
	u.CreatedAt = now
	return id, nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, nickname, avatar, created_at
		FROM users WHERE id = ?`, id)
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, nickname, avatar, created_at
		FROM users WHERE username = ?`, username)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, nickname, avatar, created_at
		FROM users WHERE email = ?`, email)
}

func (s *UserStore) getUser(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Nickname, &u.Avatar, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

func (s *UserStore) GetStats(ctx context.Context, userID int64) (*user.Stats, error) {
	var st user.Stats
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, total_words, streak_days, max_streak_days, authors_collected, updated_at
		 FROM user_stats WHERE user_id = ?`, userID).Scan(
		&st.ID, &st.UserID, &st.TotalWords, &st.StreakDays, &st.MaxStreakDays, &st.AuthorsCollected, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user stats")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user stats", err)
	}
	st.UpdatedAt = parseTime(updatedAt)
	return &st, nil
}

func (s *UserStore) UpdateStats(ctx context.Context, st *user.Stats) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE user_stats
		 SET total_words = ?, streak_days = ?, max_streak_days = ?, authors_collected = ?, updated_at = ?
		 WHERE user_id = ?`,
		st.TotalWords, st.StreakDays, st.MaxStreakDays, st.AuthorsCollected, formatTime(time.Now()), st.UserID)
	if err != nil {
		return apperrors.NewDatabaseError("update user stats", err)
	}
	return nil
}

// isUniqueViolation detects SQLite unique-constraint failures without
// depending on driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
