package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the recognised difficulty choices.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Problem is a practice problem in the shared catalog. Catalog entries are
// staff-mutated reference data; everyone may read them.
type Problem struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Acceptance   float64    `gorm:"not null" json:"acceptance"`
	Difficulty   Difficulty `gorm:"not null" json:"difficulty"`
	QuestionHTML string     `gorm:"type:text" json:"question_html"`
	SolutionHTML string     `gorm:"type:text" json:"solution_html"`
	Tags         []Tag      `gorm:"many2many:problem_tags" json:"tags"`
	Companies    []Company  `gorm:"many2many:problem_companies" json:"companies"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Status is the progress label computed for the requesting user.
	// Never persisted; omitted for anonymous requests.
	Status *string `gorm:"-" json:"status,omitempty"`
}
