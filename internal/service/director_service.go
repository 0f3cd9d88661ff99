package service

import (
	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

// DirectorService handles board member CRUD.
type DirectorService struct {
	db *gorm.DB
}

// DirectorInput carries submitted director fields.
type DirectorInput struct {
	Name         *string
	Title        *string
	Organization *string
	Photo        *string
	Bio          *string
	Order        *int
	IsChairman   *bool
}

// NewDirectorService creates a DirectorService instance.
func NewDirectorService(gdb *gorm.DB) *DirectorService {
	return &DirectorService{db: gdb}
}

// List returns directors in display order.
func (s *DirectorService) List(page Pagination) (PageResult[db.Director], error) {
	query := s.db.Model(&db.Director{}).Order("sort_order asc").Order("id asc")
	return paginate[db.Director](query, page)
}

// Get fetches a director by numeric id.
func (s *DirectorService) Get(identifier string) (*db.Director, error) {
	return findByID[db.Director](s.db, nil, KindDirector, identifier)
}

// Create inserts a new director.
func (s *DirectorService) Create(input DirectorInput) (*db.Director, error) {
	if err := validateDirectorInput(input, false); err != nil {
		return nil, err
	}

	var item db.Director
	applyDirectorInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing director.
func (s *DirectorService) Update(identifier string, input DirectorInput, partial bool) (*db.Director, error) {
	item, err := s.Get(identifier)
	if err != nil {
		return nil, err
	}
	if err := validateDirectorInput(input, partial); err != nil {
		return nil, err
	}

	applyDirectorInput(item, input)
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a director.
func (s *DirectorService) Delete(identifier string) error {
	item, err := s.Get(identifier)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func validateDirectorInput(input DirectorInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("name", input.Name, 200)
	check.requiredString("title", input.Title, 200)
	check.requiredString("organization", input.Organization, 200)
	check.requiredString("bio", input.Bio, 0)
	return check.err()
}

func applyDirectorInput(item *db.Director, input DirectorInput) {
	setString(&item.Name, input.Name)
	setString(&item.Title, input.Title)
	setString(&item.Organization, input.Organization)
	setString(&item.Photo, input.Photo)
	setString(&item.Bio, input.Bio)
	setInt(&item.Order, input.Order)
	setBool(&item.IsChairman, input.IsChairman)
}
