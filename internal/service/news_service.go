package service

import (
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	NewsCategoryPress     = "press"
	NewsCategoryEvent     = "event"
	NewsCategoryInTheNews = "in_the_news"
	NewsCategoryUpdate    = "update"

	// FeaturedNewsLimit caps the featured news sub-listing.
	FeaturedNewsLimit = 3
)

var newsCategories = []string{NewsCategoryPress, NewsCategoryEvent, NewsCategoryInTheNews, NewsCategoryUpdate}

// NewsService handles news article CRUD.
type NewsService struct {
	db *gorm.DB
}

// NewsFilter describes filters for listing news.
type NewsFilter struct {
	Category   string
	IsFeatured *bool
	Pagination
}

// NewsInput carries submitted news article fields.
type NewsInput struct {
	Title         *string
	Slug          *string
	Category      *string
	Excerpt       *string
	Content       *string
	Image         *string
	PublishedDate *string
	IsFeatured    *bool
}

// NewNewsService creates a NewsService instance.
func NewNewsService(gdb *gorm.DB) *NewsService {
	return &NewsService{db: gdb}
}

// List returns news articles, newest first.
func (s *NewsService) List(filter NewsFilter) (PageResult[db.NewsArticle], error) {
	query := s.db.Model(&db.NewsArticle{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	query = query.Order("published_date desc").Order("id desc")
	return paginate[db.NewsArticle](query, filter.Pagination)
}

// Featured returns the most recent featured articles.
func (s *NewsService) Featured() ([]db.NewsArticle, error) {
	items := []db.NewsArticle{}
	if err := s.db.Where("is_featured = ?", true).
		Order("published_date desc").Order("id desc").
		Limit(FeaturedNewsLimit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get resolves an article by slug, or by id first when op is a mutation.
func (s *NewsService) Get(identifier string, op Operation) (*db.NewsArticle, error) {
	return resolveRecord[db.NewsArticle](s.db, nil, KindNewsArticle, identifier, op)
}

// Create inserts a new article with a slug derived from its title.
func (s *NewsService) Create(input NewsInput) (*db.NewsArticle, error) {
	var item db.NewsArticle
	if err := applyNewsInput(&item, input, false); err != nil {
		return nil, err
	}

	slugValue, err := assignSlugOnCreate(s.db, &db.NewsArticle{}, KindNewsArticle, input.Slug, item.Title, newsSlugLength)
	if err != nil {
		return nil, err
	}
	item.Slug = slugValue

	if err := s.db.Create(&item).Error; err != nil {
		return nil, translateWriteError(err, KindNewsArticle, "slug")
	}
	return &item, nil
}

// Update modifies the article addressed by identifier.
func (s *NewsService) Update(identifier string, input NewsInput, partial bool) (*db.NewsArticle, error) {
	item, err := s.Get(identifier, OperationMutate)
	if err != nil {
		return nil, err
	}
	if err := applyNewsInput(item, input, partial); err != nil {
		return nil, err
	}
	item.Slug = applySlugOnUpdate(item.Slug, input.Slug)

	if err := s.db.Save(item).Error; err != nil {
		return nil, translateWriteError(err, KindNewsArticle, "slug")
	}
	return item, nil
}

// Delete removes the article addressed by identifier.
func (s *NewsService) Delete(identifier string) error {
	item, err := s.Get(identifier, OperationMutate)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

// applyNewsInput validates input and copies the submitted fields onto item.
func applyNewsInput(item *db.NewsArticle, input NewsInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("title", input.Title, 300)
	check.slug("slug", input.Slug)
	check.choice("category", input.Category, true, newsCategories...)
	check.requiredString("excerpt", input.Excerpt, 500)
	check.requiredString("content", input.Content, 0)
	published := check.date("published_date", input.PublishedDate, true)
	if err := check.err(); err != nil {
		return err
	}

	setString(&item.Title, input.Title)
	setString(&item.Category, input.Category)
	setString(&item.Excerpt, input.Excerpt)
	setString(&item.Content, input.Content)
	setString(&item.Image, input.Image)
	setDate(&item.PublishedDate, input.PublishedDate, published)
	setBool(&item.IsFeatured, input.IsFeatured)
	return nil
}
