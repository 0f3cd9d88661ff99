package service

import (
	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

var csrCategories = []string{"education", "health", "environment", "community"}

// CSRService handles CSR initiatives.
type CSRService struct {
	db *gorm.DB
}

// CSRInput carries submitted initiative fields.
type CSRInput struct {
	Title        *string
	Category     *string
	Description  *string
	ImpactMetric *string
	Image        *string
	Order        *int
}

// NewCSRService creates a CSRService instance.
func NewCSRService(gdb *gorm.DB) *CSRService {
	return &CSRService{db: gdb}
}

// List returns initiatives in display order.
func (s *CSRService) List(page Pagination) (PageResult[db.CSRInitiative], error) {
	query := s.db.Model(&db.CSRInitiative{}).Order("sort_order asc").Order("id asc")
	return paginate[db.CSRInitiative](query, page)
}

// Get fetches an initiative by id.
func (s *CSRService) Get(identifier string) (*db.CSRInitiative, error) {
	return findByID[db.CSRInitiative](s.db, nil, KindCSRInitiative, identifier)
}

// Create inserts a new initiative.
func (s *CSRService) Create(input CSRInput) (*db.CSRInitiative, error) {
	var item db.CSRInitiative
	if err := applyCSRInput(&item, input, false); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing initiative.
func (s *CSRService) Update(identifier string, input CSRInput, partial bool) (*db.CSRInitiative, error) {
	item, err := s.Get(identifier)
	if err != nil {
		return nil, err
	}
	if err := applyCSRInput(item, input, partial); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an initiative.
func (s *CSRService) Delete(identifier string) error {
	item, err := s.Get(identifier)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func applyCSRInput(item *db.CSRInitiative, input CSRInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("title", input.Title, 200)
	check.choice("category", input.Category, true, csrCategories...)
	check.requiredString("description", input.Description, 0)
	check.requiredString("impact_metric", input.ImpactMetric, 100)
	if err := check.err(); err != nil {
		return err
	}

	setString(&item.Title, input.Title)
	setString(&item.Category, input.Category)
	setString(&item.Description, input.Description)
	setString(&item.ImpactMetric, input.ImpactMetric)
	setString(&item.Image, input.Image)
	setInt(&item.Order, input.Order)
	return nil
}
