package repositories

import (
	"strings"

	"jobprep/internal/models"

	"gorm.io/gorm"
)

// ProblemFilter carries the optional list parameters for the catalog.
// Tags and Companies are name sets; a problem matches when its own set
// intersects the supplied one. Search is a case-insensitive substring
// match over name and question content.
type ProblemFilter struct {
	Difficulty models.Difficulty
	Tags       []string
	Companies  []string
	Search     string
	Limit      int
	Offset     int
}

type ProblemRepository struct {
	DB *gorm.DB
}

func (r *ProblemRepository) filtered(f ProblemFilter) *gorm.DB {
	q := r.DB.Model(&models.Problem{})
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if len(f.Tags) > 0 {
		q = q.Where("problems.id IN (?)", r.DB.Table("problem_tags").
			Select("problem_tags.problem_id").
			Joins("JOIN tags ON tags.id = problem_tags.tag_id").
			Where("tags.name IN ?", f.Tags))
	}
	if len(f.Companies) > 0 {
		q = q.Where("problems.id IN (?)", r.DB.Table("problem_companies").
			Select("problem_companies.problem_id").
			Joins("JOIN companies ON companies.id = problem_companies.company_id").
			Where("companies.name IN ?", f.Companies))
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(problems.name) LIKE ? OR LOWER(problems.question_html) LIKE ?", like, like)
	}
	return q
}

// List returns one page of matching problems plus the total match count.
// Catalog order is acceptance descending, then name, then id.
func (r *ProblemRepository) List(f ProblemFilter) ([]models.Problem, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var problems []models.Problem
	err := r.filtered(f).
		Order("acceptance DESC, problems.name ASC, problems.id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Tags").
		Preload("Companies").
		Find(&problems).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return problems, total, nil
}

func (r *ProblemRepository) GetByID(id uint) (*models.Problem, error) {
	var problem models.Problem
	err := r.DB.Preload("Tags").Preload("Companies").First(&problem, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &problem, nil
}

// Create persists a problem, resolving tag and company names to rows and
// creating any that do not exist yet.
func (r *ProblemRepository) Create(problem *models.Problem, tags, companies []string) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		resolved, err := resolveTags(tx, tags)
		if err != nil {
			return err
		}
		problem.Tags = resolved

		companiesResolved, err := resolveCompanies(tx, companies)
		if err != nil {
			return err
		}
		problem.Companies = companiesResolved

		return tx.Create(problem).Error
	})
	return translate(err)
}

// Update applies a partial update. Only the supplied columns change; a
// non-nil tags/companies slice replaces the whole association.
func (r *ProblemRepository) Update(id uint, updates map[string]any, tags, companies *[]string) (*models.Problem, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var problem models.Problem
		if err := tx.First(&problem, id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&problem).Updates(updates).Error; err != nil {
				return err
			}
		}
		if tags != nil {
			resolved, err := resolveTags(tx, *tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&problem).Association("Tags").Replace(resolved); err != nil {
				return err
			}
		}
		if companies != nil {
			resolved, err := resolveCompanies(tx, *companies)
			if err != nil {
				return err
			}
			if err := tx.Model(&problem).Association("Companies").Replace(resolved); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.GetByID(id)
}

// Delete removes a problem and cascades to its join rows and dependent
// Status rows. Progress marks are left alone on purpose: they carry no
// foreign key to the catalog.
func (r *ProblemRepository) Delete(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var problem models.Problem
		if err := tx.First(&problem, id).Error; err != nil {
			return err
		}
		if err := tx.Where("problem_id = ?", id).Delete(&models.Status{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&problem).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&problem).Association("Companies").Clear(); err != nil {
			return err
		}
		return tx.Delete(&problem).Error
	})
	return translate(err)
}

func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func resolveCompanies(tx *gorm.DB, names []string) ([]models.Company, error) {
	companies := make([]models.Company, 0, len(names))
	for _, name := range names {
		var company models.Company
		if err := tx.Where(models.Company{Name: name}).FirstOrCreate(&company).Error; err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}
