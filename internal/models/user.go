package models

import "time"

// User represents a registered user in the system.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"date_joined"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Derived from progress marks, never persisted on the user row.
	ConfidentProblems []uint `gorm:"-" json:"confident_problems"`
	SolvedProblems    []uint `gorm:"-" json:"solved_problems"`
	TriedProblems     []uint `gorm:"-" json:"tried_problems"`
}

type ProgressLabel string

const (
	ProgressConfident ProgressLabel = "confident"
	ProgressSolved    ProgressLabel = "solved"
	ProgressTried     ProgressLabel = "tried"
)

// Valid reports whether l is one of the recognised progress labels.
func (l ProgressLabel) Valid() bool {
	switch l {
	case ProgressConfident, ProgressSolved, ProgressTried:
		return true
	}
	return false
}

// ProgressMark holds the single progress label a user has assigned to a
// problem. The unique (user_id, problem_id) index makes "member of two
// lists" unrepresentable; transitions are a one-row upsert.
type ProgressMark struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	UserID    uint          `gorm:"not null;uniqueIndex:idx_progress_user_problem" json:"user"`
	ProblemID uint          `gorm:"not null;uniqueIndex:idx_progress_user_problem" json:"problem"`
	Label     ProgressLabel `gorm:"not null" json:"label"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
