package repositories

import (
	"strings"

	"jobprep/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserFilter lists users. Search matches username or email; the role and
// activity flags are exact filters when non-nil.
type UserFilter struct {
	Search   string
	IsStaff  *bool
	IsActive *bool
	Limit    int
	Offset   int
}

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return translate(r.DB.Create(user).Error)
}

func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) filtered(f UserFilter) *gorm.DB {
	q := r.DB.Model(&models.User{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.IsStaff != nil {
		q = q.Where("is_staff = ?", *f.IsStaff)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *UserRepository) List(f UserFilter) ([]models.User, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var users []models.User
	err := r.filtered(f).Order("username ASC, id ASC").Limit(f.Limit).Offset(f.Offset).Find(&users).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

// UpdateUser applies a partial update; only the supplied columns change.
func (r *UserRepository) UpdateUser(id uint, updates map[string]any) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	if len(updates) > 0 {
		if err := r.DB.Model(&user).Updates(updates).Error; err != nil {
			return nil, translate(err)
		}
	}
	return &user, nil
}

// DeleteUser removes the user together with their status rows and
// progress marks.
func (r *UserRepository) DeleteUser(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Status{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ProgressMark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return translate(err)
}

// SetProgress records the user's progress label for a problem as a single
// upsert, so concurrent marks for the same pair serialize at the row and
// the pair can never hold two labels. The problem id is deliberately not
// checked against the catalog.
func (r *UserRepository) SetProgress(userID, problemID uint, label models.ProgressLabel) error {
	mark := models.ProgressMark{UserID: userID, ProblemID: problemID, Label: label}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "problem_id"}},
		DoUpdates: clause.Assignments(map[string]any{"label": label}),
	}).Create(&mark).Error
	return translate(err)
}

// ProgressSets returns the user's three derived problem-id collections in
// mark order (oldest transition first).
func (r *UserRepository) ProgressSets(userID uint) (confident, solved, tried []uint, err error) {
	var marks []models.ProgressMark
	err = r.DB.Where("user_id = ?", userID).Order("updated_at ASC, id ASC").Find(&marks).Error
	if err != nil {
		return nil, nil, nil, translate(err)
	}
	confident, solved, tried = []uint{}, []uint{}, []uint{}
	for _, m := range marks {
		switch m.Label {
		case models.ProgressConfident:
			confident = append(confident, m.ProblemID)
		case models.ProgressSolved:
			solved = append(solved, m.ProblemID)
		case models.ProgressTried:
			tried = append(tried, m.ProblemID)
		}
	}
	return confident, solved, tried, nil
}

// ProgressLabels returns the stored label for each of the given problems
// that the user has marked. Unmarked problems are absent from the map.
func (r *UserRepository) ProgressLabels(userID uint, problemIDs []uint) (map[uint]models.ProgressLabel, error) {
	labels := make(map[uint]models.ProgressLabel, len(problemIDs))
	if len(problemIDs) == 0 {
		return labels, nil
	}
	var marks []models.ProgressMark
	err := r.DB.Where("user_id = ? AND problem_id IN ?", userID, problemIDs).Find(&marks).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, m := range marks {
		labels[m.ProblemID] = m.Label
	}
	return labels, nil
}
