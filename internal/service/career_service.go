package service

import (
	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	EmploymentFullTime = "full_time"
	EmploymentContract = "contract"
)

var employmentTypes = []string{EmploymentFullTime, EmploymentContract}

// CareerService handles job listing CRUD.
type CareerService struct {
	db *gorm.DB
}

// CareerFilter describes filters for listing careers. Inactive listings
// are hidden unless IncludeInactive is set.
type CareerFilter struct {
	IncludeInactive bool
	Pagination
}

// CareerInput carries submitted career fields.
type CareerInput struct {
	Title          *string
	Department     *string
	Location       *string
	EmploymentType *string
	Description    *string
	Requirements   *string
	SalaryRange    *string
	Deadline       *string
	IsActive       *bool
}

// NewCareerService creates a CareerService instance.
func NewCareerService(gdb *gorm.DB) *CareerService {
	return &CareerService{db: gdb}
}

// List returns careers, newest first.
func (s *CareerService) List(filter CareerFilter) (PageResult[db.Career], error) {
	query := s.db.Model(&db.Career{}).
		Scopes(ActiveOnly(filter.IncludeInactive)).
		Order("created_at desc").Order("id desc")
	return paginate[db.Career](query, filter.Pagination)
}

// Get fetches a career by id within the visible collection.
func (s *CareerService) Get(identifier string, includeInactive bool) (*db.Career, error) {
	return findByID[db.Career](s.db, ActiveOnly(includeInactive), KindCareer, identifier)
}

// Create inserts a new career; listings are active unless stated otherwise.
func (s *CareerService) Create(input CareerInput) (*db.Career, error) {
	item := db.Career{EmploymentType: EmploymentFullTime, IsActive: true}
	if err := applyCareerInput(&item, input, false); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing career, active or not.
func (s *CareerService) Update(identifier string, input CareerInput, partial bool) (*db.Career, error) {
	item, err := s.Get(identifier, true)
	if err != nil {
		return nil, err
	}
	if err := applyCareerInput(item, input, partial); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a career together with its applications.
func (s *CareerService) Delete(identifier string) error {
	item, err := s.Get(identifier, true)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("career_id = ?", item.ID).Delete(&db.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

func applyCareerInput(item *db.Career, input CareerInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("title", input.Title, 200)
	check.requiredString("department", input.Department, 100)
	check.requiredString("location", input.Location, 200)
	check.choice("employment_type", input.EmploymentType, false, employmentTypes...)
	check.requiredString("description", input.Description, 0)
	check.requiredString("requirements", input.Requirements, 0)
	check.maxLength("salary_range", input.SalaryRange, 100)
	deadline := check.date("deadline", input.Deadline, true)
	if err := check.err(); err != nil {
		return err
	}

	setString(&item.Title, input.Title)
	setString(&item.Department, input.Department)
	setString(&item.Location, input.Location)
	setStringOr(&item.EmploymentType, input.EmploymentType, EmploymentFullTime)
	setString(&item.Description, input.Description)
	setString(&item.Requirements, input.Requirements)
	setString(&item.SalaryRange, input.SalaryRange)
	setDate(&item.Deadline, input.Deadline, deadline)
	setBool(&item.IsActive, input.IsActive)
	return nil
}
