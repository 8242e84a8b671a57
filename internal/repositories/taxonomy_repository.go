package repositories

import (
	"strings"

	"jobprep/internal/models"

	"gorm.io/gorm"
)

// NameFilter is the list filter shared by tags and companies.
type NameFilter struct {
	Search string
	Limit  int
	Offset int
}

type TagRepository struct {
	DB *gorm.DB
}

func (r *TagRepository) filtered(f NameFilter) *gorm.DB {
	q := r.DB.Model(&models.Tag{})
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	return q
}

func (r *TagRepository) List(f NameFilter) ([]models.Tag, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var tags []models.Tag
	err := r.filtered(f).Order("name ASC, id ASC").Limit(f.Limit).Offset(f.Offset).Find(&tags).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return tags, total, nil
}

func (r *TagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *TagRepository) Create(tag *models.Tag) error {
	return translate(r.DB.Create(tag).Error)
}

func (r *TagRepository) Update(id uint, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.DB.Model(&tag).Update("name", name).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *TagRepository) Delete(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM problem_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	return translate(err)
}

type CompanyRepository struct {
	DB *gorm.DB
}

func (r *CompanyRepository) filtered(f NameFilter) *gorm.DB {
	q := r.DB.Model(&models.Company{})
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	return q
}

func (r *CompanyRepository) List(f NameFilter) ([]models.Company, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var companies []models.Company
	err := r.filtered(f).Order("name ASC, id ASC").Limit(f.Limit).Offset(f.Offset).Find(&companies).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return companies, total, nil
}

func (r *CompanyRepository) GetByID(id uint) (*models.Company, error) {
	var company models.Company
	if err := r.DB.First(&company, id).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (r *CompanyRepository) Create(company *models.Company) error {
	return translate(r.DB.Create(company).Error)
}

func (r *CompanyRepository) Update(id uint, name string) (*models.Company, error) {
	var company models.Company
	if err := r.DB.First(&company, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.DB.Model(&company).Update("name", name).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (r *CompanyRepository) Delete(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM problem_companies WHERE company_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
	return translate(err)
}
