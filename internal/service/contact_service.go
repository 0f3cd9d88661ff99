package service

import (
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

var inquiryCategories = []string{"general", "media", "technical", "careers"}

// ContactInquiryService stores contact form submissions.
type ContactInquiryService struct {
	db *gorm.DB
}

// ContactInquiryFilter describes filters for listing inquiries.
type ContactInquiryFilter struct {
	Category   string
	IsResolved *bool
	Pagination
}

// ContactInquiryInput carries submitted inquiry fields.
type ContactInquiryInput struct {
	FullName     *string
	Organization *string
	Email        *string
	Category     *string
	Message      *string
	IsResolved   *bool
}

// NewContactInquiryService creates a ContactInquiryService instance.
func NewContactInquiryService(gdb *gorm.DB) *ContactInquiryService {
	return &ContactInquiryService{db: gdb}
}

// List returns inquiries, newest first.
func (s *ContactInquiryService) List(filter ContactInquiryFilter) (PageResult[db.ContactInquiry], error) {
	query := s.db.Model(&db.ContactInquiry{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.IsResolved != nil {
		query = query.Where("is_resolved = ?", *filter.IsResolved)
	}
	query = query.Order("submitted_at desc").Order("id desc")
	return paginate[db.ContactInquiry](query, filter.Pagination)
}

// Get fetches an inquiry by id.
func (s *ContactInquiryService) Get(identifier string) (*db.ContactInquiry, error) {
	return findByID[db.ContactInquiry](s.db, nil, KindContactInquiry, identifier)
}

// Create stores a new inquiry.
func (s *ContactInquiryService) Create(input ContactInquiryInput) (*db.ContactInquiry, error) {
	var item db.ContactInquiry
	if err := applyContactInput(&item, input, false); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing inquiry, typically to mark it resolved.
func (s *ContactInquiryService) Update(identifier string, input ContactInquiryInput, partial bool) (*db.ContactInquiry, error) {
	item, err := s.Get(identifier)
	if err != nil {
		return nil, err
	}
	if err := applyContactInput(item, input, partial); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an inquiry.
func (s *ContactInquiryService) Delete(identifier string) error {
	item, err := s.Get(identifier)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func applyContactInput(item *db.ContactInquiry, input ContactInquiryInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("full_name", input.FullName, 200)
	check.maxLength("organization", input.Organization, 200)
	check.email("email", input.Email, true)
	check.choice("category", input.Category, true, inquiryCategories...)
	check.requiredString("message", input.Message, 0)
	if err := check.err(); err != nil {
		return err
	}

	setString(&item.FullName, input.FullName)
	setString(&item.Organization, input.Organization)
	setString(&item.Email, input.Email)
	setString(&item.Category, input.Category)
	setString(&item.Message, input.Message)
	setBool(&item.IsResolved, input.IsResolved)
	return nil
}
