package models

import "time"

type StatusValue string

const (
	StatusUnread         StatusValue = "unread"
	StatusRead           StatusValue = "read"
	StatusSolvedEasy     StatusValue = "solved_easy"
	StatusSolvedMedium   StatusValue = "solved_medium"
	StatusSolvedHard     StatusValue = "solved_hard"
	StatusSolvedTutorial StatusValue = "solved_tutorial"
)

// Valid reports whether v is one of the recognised status choices.
func (v StatusValue) Valid() bool {
	switch v {
	case StatusUnread, StatusRead, StatusSolvedEasy, StatusSolvedMedium,
		StatusSolvedHard, StatusSolvedTutorial:
		return true
	}
	return false
}

// Status is a per-user, per-problem reading record. Rows are owned by the
// referenced user; deleting the user or the problem removes them.
type Status struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user"`
	ProblemID uint        `gorm:"not null;index" json:"problem"`
	Value     StatusValue `gorm:"column:status;not null;default:unread" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
