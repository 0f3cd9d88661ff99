package service

import (
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	ProjectStatusOperational  = "operational"
	ProjectStatusConstruction = "construction"
	ProjectStatusPlanning     = "planning"
)

var projectStatuses = []string{ProjectStatusOperational, ProjectStatusConstruction, ProjectStatusPlanning}

// ProjectService handles project CRUD.
type ProjectService struct {
	db *gorm.DB
}

// ProjectFilter describes filters for listing projects.
type ProjectFilter struct {
	Status string
	Pagination
}

// ProjectInput carries submitted project fields; nil means "not submitted".
type ProjectInput struct {
	Name              *string
	Slug              *string
	Location          *string
	CapacityMW        *int
	Technology        *string
	Status            *string
	Description       *string
	HeroImage         *string
	Latitude          *float64
	Longitude         *float64
	EfficiencyPercent *float64
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// List returns projects matching the filter.
func (s *ProjectService) List(filter ProjectFilter) (PageResult[db.Project], error) {
	query := s.db.Model(&db.Project{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	return paginate[db.Project](query.Order("id asc"), filter.Pagination)
}

// Get resolves a project by slug, or by id first when op is a mutation.
func (s *ProjectService) Get(identifier string, op Operation) (*db.Project, error) {
	return resolveRecord[db.Project](s.db, nil, KindProject, identifier, op)
}

// Create inserts a new project, deriving its slug from the name when none
// was supplied.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	if err := validateProjectInput(input, false); err != nil {
		return nil, err
	}

	item := db.Project{Status: ProjectStatusOperational}
	applyProjectInput(&item, input)

	slugValue, err := assignSlugOnCreate(s.db, &db.Project{}, KindProject, input.Slug, item.Name, projectSlugLength)
	if err != nil {
		return nil, err
	}
	item.Slug = slugValue

	if err := s.db.Create(&item).Error; err != nil {
		return nil, translateWriteError(err, KindProject, "slug")
	}
	return &item, nil
}

// Update modifies the project addressed by identifier. With partial set
// only submitted fields are validated and applied.
func (s *ProjectService) Update(identifier string, input ProjectInput, partial bool) (*db.Project, error) {
	item, err := s.Get(identifier, OperationMutate)
	if err != nil {
		return nil, err
	}
	if err := validateProjectInput(input, partial); err != nil {
		return nil, err
	}

	applyProjectInput(item, input)
	item.Slug = applySlugOnUpdate(item.Slug, input.Slug)

	if err := s.db.Save(item).Error; err != nil {
		return nil, translateWriteError(err, KindProject, "slug")
	}
	return item, nil
}

// Delete removes the project addressed by identifier.
func (s *ProjectService) Delete(identifier string) error {
	item, err := s.Get(identifier, OperationMutate)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func validateProjectInput(input ProjectInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("name", input.Name, 200)
	check.slug("slug", input.Slug)
	check.requiredString("location", input.Location, 200)
	check.requiredValue("capacity_mw", input.CapacityMW != nil)
	check.requiredString("technology", input.Technology, 100)
	check.choice("status", input.Status, false, projectStatuses...)
	check.requiredString("description", input.Description, 0)
	if input.CapacityMW != nil && *input.CapacityMW < 0 {
		check.errs.Add("capacity_mw", "Ensure this value is greater than or equal to 0.")
	}
	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		check.errs.Add("latitude", "Ensure this value is between -90 and 90.")
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		check.errs.Add("longitude", "Ensure this value is between -180 and 180.")
	}
	return check.err()
}

func applyProjectInput(item *db.Project, input ProjectInput) {
	setString(&item.Name, input.Name)
	setString(&item.Location, input.Location)
	setInt(&item.CapacityMW, input.CapacityMW)
	setString(&item.Technology, input.Technology)
	setStringOr(&item.Status, input.Status, ProjectStatusOperational)
	setString(&item.Description, input.Description)
	setString(&item.HeroImage, input.HeroImage)
	if input.Latitude != nil {
		item.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		item.Longitude = input.Longitude
	}
	if input.EfficiencyPercent != nil {
		item.EfficiencyPercent = input.EfficiencyPercent
	}
}
