package service

import (
	"fmt"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

// CompanyService manages the company profile singleton.
type CompanyService struct {
	db *gorm.DB
}

// CompanyInput carries submitted company profile fields.
type CompanyInput struct {
	Name             *string
	Tagline          *string
	Description      *string
	TotalCapacityMW  *int
	Technology       *string
	PartnershipRatio *string
}

// NewCompanyService creates a CompanyService instance.
func NewCompanyService(gdb *gorm.DB) *CompanyService {
	return &CompanyService{db: gdb}
}

func defaultCompanyInfo() db.CompanyInfo {
	return db.CompanyInfo{
		ID:               db.CompanyInfoRowID,
		Name:             "BIFPCL",
		TotalCapacityMW:  1320,
		Technology:       "Ultra-Super Critical",
		PartnershipRatio: "50:50",
	}
}

// Get returns the company profile, creating it with defaults on first use.
func (s *CompanyService) Get() (*db.CompanyInfo, error) {
	item := defaultCompanyInfo()
	if err := s.db.Where(db.CompanyInfo{ID: db.CompanyInfoRowID}).
		Attrs(item).
		FirstOrCreate(&item).Error; err != nil {
		return nil, fmt.Errorf("load company info: %w", err)
	}
	return &item, nil
}

// Update replaces (partial=false) or patches the company profile.
func (s *CompanyService) Update(input CompanyInput, partial bool) (*db.CompanyInfo, error) {
	check := newFieldChecker(partial)
	check.requiredString("name", input.Name, 200)
	check.requiredString("tagline", input.Tagline, 300)
	check.requiredString("description", input.Description, 0)
	check.maxLength("technology", input.Technology, 100)
	check.maxLength("partnership_ratio", input.PartnershipRatio, 20)
	if input.TotalCapacityMW != nil && *input.TotalCapacityMW < 0 {
		check.errs.Add("total_capacity_mw", "Ensure this value is greater than or equal to 0.")
	}
	if err := check.err(); err != nil {
		return nil, err
	}

	item, err := s.Get()
	if err != nil {
		return nil, err
	}

	setString(&item.Name, input.Name)
	setString(&item.Tagline, input.Tagline)
	setString(&item.Description, input.Description)
	setInt(&item.TotalCapacityMW, input.TotalCapacityMW)
	setString(&item.Technology, input.Technology)
	setString(&item.PartnershipRatio, input.PartnershipRatio)

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}
