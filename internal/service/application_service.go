package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
)

var applicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
}

// JobApplicationService handles job applications.
type JobApplicationService struct {
	db *gorm.DB
}

// JobApplicationFilter describes filters for listing applications.
type JobApplicationFilter struct {
	CareerID uint
	Status   string
	Pagination
}

// JobApplicationInput carries submitted application fields. CareerID is
// kept as text so that malformed ids surface as field errors.
type JobApplicationInput struct {
	CareerID    *string
	FullName    *string
	Email       *string
	Phone       *string
	LinkedInURL *string
	Resume      *string
	CoverLetter *string
	Status      *string
}

// NewJobApplicationService creates a JobApplicationService instance.
func NewJobApplicationService(gdb *gorm.DB) *JobApplicationService {
	return &JobApplicationService{db: gdb}
}

// List returns applications, newest first, with their career preloaded.
func (s *JobApplicationService) List(filter JobApplicationFilter) (PageResult[db.JobApplication], error) {
	query := s.db.Model(&db.JobApplication{})
	if filter.CareerID != 0 {
		query = query.Where("career_id = ?", filter.CareerID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Order("submitted_at desc").Order("id desc")
	return paginate[db.JobApplication](query, filter.Pagination, withCareer)
}

// Get fetches an application by id.
func (s *JobApplicationService) Get(identifier string) (*db.JobApplication, error) {
	return findByID[db.JobApplication](s.db, withCareer, KindJobApplication, identifier)
}

func withCareer(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Career")
}

// Create stores a new application against an existing career. New
// applications always start as pending.
func (s *JobApplicationService) Create(input JobApplicationInput) (*db.JobApplication, error) {
	input.Status = nil
	item := db.JobApplication{Status: ApplicationStatusPending}
	if err := s.apply(&item, input, false); err != nil {
		return nil, err
	}
	if err := s.db.Omit("Career").Create(&item).Error; err != nil {
		return nil, err
	}
	return s.Get(strconv.FormatUint(uint64(item.ID), 10))
}

// Update modifies an existing application.
func (s *JobApplicationService) Update(identifier string, input JobApplicationInput, partial bool) (*db.JobApplication, error) {
	item, err := s.Get(identifier)
	if err != nil {
		return nil, err
	}
	if err := s.apply(item, input, partial); err != nil {
		return nil, err
	}
	if err := s.db.Omit("Career").Save(item).Error; err != nil {
		return nil, err
	}
	return s.Get(identifier)
}

// Delete removes an application.
func (s *JobApplicationService) Delete(identifier string) error {
	item, err := s.Get(identifier)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func (s *JobApplicationService) apply(item *db.JobApplication, input JobApplicationInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredValue("career", input.CareerID != nil)
	check.requiredString("full_name", input.FullName, 200)
	check.email("email", input.Email, true)
	check.requiredString("phone", input.Phone, 20)
	check.url("linkedin_url", input.LinkedInURL)
	check.maxLength("linkedin_url", input.LinkedInURL, 200)
	check.requiredString("resume", input.Resume, 0)
	check.requiredString("cover_letter", input.CoverLetter, 0)
	check.choice("status", input.Status, false, applicationStatuses...)

	var careerID uint
	if input.CareerID != nil {
		id, err := s.careerExists(*input.CareerID)
		switch {
		case err == nil:
			careerID = id
		case errors.Is(err, ErrNotFound):
			check.errs.Add("career", "Invalid pk \""+strings.TrimSpace(*input.CareerID)+"\" - object does not exist.")
		default:
			return err
		}
	}
	if err := check.err(); err != nil {
		return err
	}

	if careerID != 0 {
		item.CareerID = careerID
	}
	setString(&item.FullName, input.FullName)
	setString(&item.Email, input.Email)
	setString(&item.Phone, input.Phone)
	setString(&item.LinkedInURL, input.LinkedInURL)
	setString(&item.Resume, input.Resume)
	setString(&item.CoverLetter, input.CoverLetter)
	setStringOr(&item.Status, input.Status, ApplicationStatusPending)
	return nil
}

// careerExists resolves a career id regardless of its active flag.
func (s *JobApplicationService) careerExists(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound(KindCareer)
	}
	var count int64
	if err := s.db.Model(&db.Career{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, notFound(KindCareer)
	}
	return uint(id), nil
}
