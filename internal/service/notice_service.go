package service

import (
	"path"
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	NoticeCategoryGeneral     = "general"
	NoticeCategoryUrgent      = "urgent"
	NoticeCategoryTender      = "tender"
	NoticeCategoryRecruitment = "recruitment"

	// FeaturedNoticeLimit caps the featured notice sub-listing.
	FeaturedNoticeLimit = 5
)

var noticeCategories = []string{NoticeCategoryGeneral, NoticeCategoryUrgent, NoticeCategoryTender, NoticeCategoryRecruitment}

var noticeCategoryLabels = map[string]string{
	NoticeCategoryGeneral:     "General",
	NoticeCategoryUrgent:      "Urgent",
	NoticeCategoryTender:      "Tender",
	NoticeCategoryRecruitment: "Recruitment",
}

// NoticeCategoryLabel returns the display label for a notice category.
func NoticeCategoryLabel(category string) string {
	if label, ok := noticeCategoryLabels[category]; ok {
		return label
	}
	return category
}

// NoticeService handles notice board CRUD.
type NoticeService struct {
	db *gorm.DB
}

// NoticeFilter describes filters for listing notices. Inactive notices are
// hidden unless IncludeInactive is set.
type NoticeFilter struct {
	IncludeInactive bool
	Category        string
	IsFeatured      *bool
	Pagination
}

// NoticeInput carries submitted notice fields.
type NoticeInput struct {
	Title          *string
	Slug           *string
	Category       *string
	Excerpt        *string
	Content        *string
	PublishedDate  *string
	Document       *string
	AttachmentName *string
	Link           *string
	IsActive       *bool
	IsFeatured     *bool
	Order          *int
}

// NewNoticeService creates a NoticeService instance.
func NewNoticeService(gdb *gorm.DB) *NoticeService {
	return &NoticeService{db: gdb}
}

// ActiveOnly restricts a notice query to active rows unless includeInactive is set.
func ActiveOnly(includeInactive bool) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if includeInactive {
			return tx
		}
		return tx.Where("is_active = ?", true)
	}
}

// List returns notices ordered by publication date then display order.
func (s *NoticeService) List(filter NoticeFilter) (PageResult[db.Notice], error) {
	query := s.db.Model(&db.Notice{}).Scopes(ActiveOnly(filter.IncludeInactive))
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	query = query.Order("published_date desc").Order("sort_order asc").Order("id desc")
	return paginate[db.Notice](query, filter.Pagination)
}

// Featured returns the most recent active featured notices.
func (s *NoticeService) Featured() ([]db.Notice, error) {
	items := []db.Notice{}
	if err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("published_date desc").Order("sort_order asc").Order("id desc").
		Limit(FeaturedNoticeLimit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get resolves a notice within the visible collection.
func (s *NoticeService) Get(identifier string, op Operation, includeInactive bool) (*db.Notice, error) {
	return resolveRecord[db.Notice](s.db, ActiveOnly(includeInactive), KindNotice, identifier, op)
}

// Create inserts a new notice with a slug derived from its title.
func (s *NoticeService) Create(input NoticeInput) (*db.Notice, error) {
	item := db.Notice{Category: NoticeCategoryGeneral, IsActive: true}
	if err := applyNoticeInput(&item, input, false); err != nil {
		return nil, err
	}

	slugValue, err := assignSlugOnCreate(s.db, &db.Notice{}, KindNotice, input.Slug, item.Title, noticeSlugLength)
	if err != nil {
		return nil, err
	}
	item.Slug = slugValue

	if err := s.db.Create(&item).Error; err != nil {
		return nil, translateWriteError(err, KindNotice, "slug")
	}
	return &item, nil
}

// Update modifies the notice addressed by identifier. Mutations see
// inactive notices too.
func (s *NoticeService) Update(identifier string, input NoticeInput, partial bool) (*db.Notice, error) {
	item, err := s.Get(identifier, OperationMutate, true)
	if err != nil {
		return nil, err
	}
	if err := applyNoticeInput(item, input, partial); err != nil {
		return nil, err
	}
	item.Slug = applySlugOnUpdate(item.Slug, input.Slug)

	if err := s.db.Save(item).Error; err != nil {
		return nil, translateWriteError(err, KindNotice, "slug")
	}
	return item, nil
}

// Delete removes the notice addressed by identifier.
func (s *NoticeService) Delete(identifier string) error {
	item, err := s.Get(identifier, OperationMutate, true)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func applyNoticeInput(item *db.Notice, input NoticeInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("title", input.Title, 500)
	check.slug("slug", input.Slug)
	check.choice("category", input.Category, false, noticeCategories...)
	published := check.date("published_date", input.PublishedDate, true)
	check.url("link", input.Link)
	check.maxLength("attachment_name", input.AttachmentName, 255)
	if err := check.err(); err != nil {
		return err
	}

	setString(&item.Title, input.Title)
	setStringOr(&item.Category, input.Category, NoticeCategoryGeneral)
	setString(&item.Excerpt, input.Excerpt)
	setString(&item.Content, input.Content)
	setDate(&item.PublishedDate, input.PublishedDate, published)
	setString(&item.Link, input.Link)
	setBool(&item.IsActive, input.IsActive)
	setBool(&item.IsFeatured, input.IsFeatured)
	setInt(&item.Order, input.Order)
	setString(&item.AttachmentName, input.AttachmentName)
	if input.Document != nil {
		item.Document = strings.TrimSpace(*input.Document)
		if item.AttachmentName == "" && item.Document != "" {
			item.AttachmentName = path.Base(item.Document)
		}
	}
	return nil
}
