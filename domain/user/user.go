package user

import "time"

// User is an account. PasswordHash is a bcrypt hash and never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Nickname     string    `json:"nickname,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Stats is the per-user aggregate counters row, created alongside the user.
type Stats struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	TotalWords       int       `json:"totalWords"`
	StreakDays       int       `json:"streakDays"`
	MaxStreakDays    int       `json:"maxStreakDays"`
	AuthorsCollected int       `json:"authorsCollected"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
