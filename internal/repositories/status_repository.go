package repositories

import (
	"jobprep/internal/models"

	"gorm.io/gorm"
)

// StatusFilter lists status rows. OwnerID, when non-nil, restricts every
// lookup to that user's rows, which is how non-staff visibility works: a
// row outside the scope simply does not exist for the caller.
type StatusFilter struct {
	OwnerID *uint
	Limit   int
	Offset  int
}

type StatusRepository struct {
	DB *gorm.DB
}

func (r *StatusRepository) scoped(ownerID *uint) *gorm.DB {
	q := r.DB.Model(&models.Status{})
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	return q
}

// Create inserts a status row. The problem reference is checked first so a
// dangling id surfaces as a constraint violation rather than a driver error.
func (r *StatusRepository) Create(status *models.Status) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Problem{}).Where("id = ?", status.ProblemID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrConflict
		}
		return tx.Create(status).Error
	})
	return translate(err)
}

func (r *StatusRepository) GetByID(id uint, ownerID *uint) (*models.Status, error) {
	var status models.Status
	if err := r.scoped(ownerID).Where("id = ?", id).First(&status).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

// List returns one page of rows ordered newest first.
func (r *StatusRepository) List(f StatusFilter) ([]models.Status, int64, error) {
	var total int64
	if err := r.scoped(f.OwnerID).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var statuses []models.Status
	err := r.scoped(f.OwnerID).
		Order("created_at DESC, id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&statuses).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return statuses, total, nil
}

func (r *StatusRepository) Update(id uint, ownerID *uint, value models.StatusValue) (*models.Status, error) {
	var status models.Status
	if err := r.scoped(ownerID).Where("id = ?", id).First(&status).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.DB.Model(&status).Update("status", value).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

func (r *StatusRepository) Delete(id uint, ownerID *uint) error {
	result := r.scoped(ownerID).Where("id = ?", id).Delete(&models.Status{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
