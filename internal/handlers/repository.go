package handlers

import (
	"context"

	"jobprep/internal/events"
	"jobprep/internal/models"
	"jobprep/internal/repositories"
)

// ProblemRepository captures the catalog persistence operations required
// by handlers.
type ProblemRepository interface {
	List(f repositories.ProblemFilter) ([]models.Problem, int64, error)
	GetByID(id uint) (*models.Problem, error)
	Create(problem *models.Problem, tags, companies []string) error
	Update(id uint, updates map[string]any, tags, companies *[]string) (*models.Problem, error)
	Delete(id uint) error
}

type TagRepository interface {
	List(f repositories.NameFilter) ([]models.Tag, int64, error)
	GetByID(id uint) (*models.Tag, error)
	Create(tag *models.Tag) error
	Update(id uint, name string) (*models.Tag, error)
	Delete(id uint) error
}

type CompanyRepository interface {
	List(f repositories.NameFilter) ([]models.Company, int64, error)
	GetByID(id uint) (*models.Company, error)
	Create(company *models.Company) error
	Update(id uint, name string) (*models.Company, error)
	Delete(id uint) error
}

type StatusRepository interface {
	List(f repositories.StatusFilter) ([]models.Status, int64, error)
	GetByID(id uint, ownerID *uint) (*models.Status, error)
	Create(status *models.Status) error
	Update(id uint, ownerID *uint, value models.StatusValue) (*models.Status, error)
	Delete(id uint, ownerID *uint) error
}

// UserRepository captures the user persistence operations required by
// handlers, including the per-pair progress transitions.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	List(f repositories.UserFilter) ([]models.User, int64, error)
	UpdateUser(id uint, updates map[string]any) (*models.User, error)
	DeleteUser(id uint) error
	SetProgress(userID, problemID uint, label models.ProgressLabel) error
	ProgressSets(userID uint) (confident, solved, tried []uint, err error)
	ProgressLabels(userID uint, problemIDs []uint) (map[uint]models.ProgressLabel, error)
}

// ProgressPublisher emits progress events; a nil implementation is valid.
type ProgressPublisher interface {
	PublishProgress(ctx context.Context, event events.ProgressEvent) error
}
