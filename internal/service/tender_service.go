package service

import (
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	TenderStatusOpen       = "open"
	TenderStatusEvaluation = "evaluation"
	TenderStatusAwarded    = "awarded"
	TenderStatusClosed     = "closed"
)

var (
	tenderStatuses   = []string{TenderStatusOpen, TenderStatusEvaluation, TenderStatusAwarded, TenderStatusClosed}
	tenderCategories = []string{"mechanical", "electrical", "civil", "it"}
)

// TenderService handles procurement tenders.
type TenderService struct {
	db *gorm.DB
}

// TenderFilter describes filters for listing tenders.
type TenderFilter struct {
	Status   string
	Category string
	Pagination
}

// TenderInput carries submitted tender fields.
type TenderInput struct {
	TenderID        *string
	Title           *string
	Category        *string
	Description     *string
	Status          *string
	PublicationDate *string
	Deadline        *string
	ValueRange      *string
	Document        *string
}

// NewTenderService creates a TenderService instance.
func NewTenderService(gdb *gorm.DB) *TenderService {
	return &TenderService{db: gdb}
}

// List returns tenders, most recently published first.
func (s *TenderService) List(filter TenderFilter) (PageResult[db.Tender], error) {
	query := s.db.Model(&db.Tender{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Order("publication_date desc").Order("id desc")
	return paginate[db.Tender](query, filter.Pagination)
}

// Get fetches a tender by id.
func (s *TenderService) Get(identifier string) (*db.Tender, error) {
	return findByID[db.Tender](s.db, nil, KindTender, identifier)
}

// Create inserts a new tender.
func (s *TenderService) Create(input TenderInput) (*db.Tender, error) {
	item := db.Tender{Status: TenderStatusOpen}
	if err := applyTenderInput(&item, input, false); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, translateWriteError(err, KindTender, "tender_id")
	}
	return &item, nil
}

// Update modifies an existing tender.
func (s *TenderService) Update(identifier string, input TenderInput, partial bool) (*db.Tender, error) {
	item, err := s.Get(identifier)
	if err != nil {
		return nil, err
	}
	if err := applyTenderInput(item, input, partial); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, translateWriteError(err, KindTender, "tender_id")
	}
	return item, nil
}

// Delete removes a tender.
func (s *TenderService) Delete(identifier string) error {
	item, err := s.Get(identifier)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func applyTenderInput(item *db.Tender, input TenderInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("tender_id", input.TenderID, 50)
	check.requiredString("title", input.Title, 300)
	check.choice("category", input.Category, true, tenderCategories...)
	check.requiredString("description", input.Description, 0)
	check.choice("status", input.Status, false, tenderStatuses...)
	published := check.date("publication_date", input.PublicationDate, true)
	deadline := check.date("deadline", input.Deadline, true)
	check.maxLength("value_range", input.ValueRange, 100)
	if err := check.err(); err != nil {
		return err
	}

	setString(&item.TenderID, input.TenderID)
	setString(&item.Title, input.Title)
	setString(&item.Category, input.Category)
	setString(&item.Description, input.Description)
	setStringOr(&item.Status, input.Status, TenderStatusOpen)
	setDate(&item.PublicationDate, input.PublicationDate, published)
	setDate(&item.Deadline, input.Deadline, deadline)
	setString(&item.ValueRange, input.ValueRange)
	setString(&item.Document, input.Document)
	return nil
}
