package service

import (
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
)

const (
	GalleryCategoryProject      = "project"
	GalleryCategoryConstruction = "construction"
	GalleryCategoryEvent        = "event"
	GalleryCategoryFacility     = "facility"

	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	// FeaturedGalleryLimit caps the featured gallery sub-listing.
	FeaturedGalleryLimit = 8
)

var (
	galleryCategories = []string{GalleryCategoryProject, GalleryCategoryConstruction, GalleryCategoryEvent, GalleryCategoryFacility}
	mediaTypes        = []string{MediaTypeImage, MediaTypeVideo}
)

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryFilter describes filters for listing gallery items.
type GalleryFilter struct {
	Category   string
	MediaType  string
	IsFeatured *bool
	Pagination
}

// GalleryInput represents fields accepted when creating or updating a gallery item.
type GalleryInput struct {
	Title       *string
	Slug        *string
	Category    *string
	MediaType   *string
	Description *string
	Image       *string
	ImageWidth  *int
	ImageHeight *int
	VideoURL    *string
	Order       *int
	IsFeatured  *bool
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns gallery items matching the filter ordered by priority.
func (s *GalleryService) List(filter GalleryFilter) (PageResult[db.GalleryImage], error) {
	query := s.db.Model(&db.GalleryImage{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if mediaType := strings.TrimSpace(filter.MediaType); mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	query = query.Order("sort_order asc").Order("created_at desc").Order("id desc")
	return paginate[db.GalleryImage](query, filter.Pagination)
}

// Featured returns the most recently added featured items.
func (s *GalleryService) Featured() ([]db.GalleryImage, error) {
	items := []db.GalleryImage{}
	if err := s.db.Where("is_featured = ?", true).
		Order("created_at desc").Order("id desc").
		Limit(FeaturedGalleryLimit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get resolves a gallery item by slug, or by id first when op is a mutation.
func (s *GalleryService) Get(identifier string, op Operation) (*db.GalleryImage, error) {
	return resolveRecord[db.GalleryImage](s.db, nil, KindGalleryImage, identifier, op)
}

// Create inserts a new gallery item. Items created without an explicit
// order are appended after the current last one.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryImage, error) {
	item := db.GalleryImage{Category: GalleryCategoryProject, MediaType: MediaTypeImage}
	if err := applyGalleryInput(&item, input, false); err != nil {
		return nil, err
	}

	if input.Order == nil {
		order, err := s.nextSortOrder()
		if err != nil {
			return nil, err
		}
		item.Order = order
	}

	slugValue, err := assignSlugOnCreate(s.db, &db.GalleryImage{}, KindGalleryImage, input.Slug, item.Title, gallerySlugLength)
	if err != nil {
		return nil, err
	}
	item.Slug = slugValue

	if err := s.db.Create(&item).Error; err != nil {
		return nil, translateWriteError(err, KindGalleryImage, "slug")
	}
	return &item, nil
}

// Update modifies an existing gallery item.
func (s *GalleryService) Update(identifier string, input GalleryInput, partial bool) (*db.GalleryImage, error) {
	item, err := s.Get(identifier, OperationMutate)
	if err != nil {
		return nil, err
	}
	if err := applyGalleryInput(item, input, partial); err != nil {
		return nil, err
	}
	item.Slug = applySlugOnUpdate(item.Slug, input.Slug)

	if err := s.db.Save(item).Error; err != nil {
		return nil, translateWriteError(err, KindGalleryImage, "slug")
	}
	return item, nil
}

// Delete removes a gallery item.
func (s *GalleryService) Delete(identifier string) error {
	item, err := s.Get(identifier, OperationMutate)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

// applyGalleryInput validates input against the merged record: an image
// item needs a stored image, a video item needs a video URL.
func applyGalleryInput(item *db.GalleryImage, input GalleryInput, partial bool) error {
	check := newFieldChecker(partial)
	check.requiredString("title", input.Title, 200)
	check.slug("slug", input.Slug)
	check.choice("category", input.Category, false, galleryCategories...)
	check.choice("media_type", input.MediaType, false, mediaTypes...)
	check.url("video_url", input.VideoURL)
	if err := check.err(); err != nil {
		return err
	}

	merged := *item
	setString(&merged.Title, input.Title)
	setStringOr(&merged.Category, input.Category, GalleryCategoryProject)
	setStringOr(&merged.MediaType, input.MediaType, MediaTypeImage)
	setString(&merged.Description, input.Description)
	setString(&merged.Image, input.Image)
	setInt(&merged.ImageWidth, input.ImageWidth)
	setInt(&merged.ImageHeight, input.ImageHeight)
	setString(&merged.VideoURL, input.VideoURL)
	setInt(&merged.Order, input.Order)
	setBool(&merged.IsFeatured, input.IsFeatured)

	switch merged.MediaType {
	case MediaTypeImage:
		if merged.Image == "" {
			check.errs.Add("image", "An image is required for image items.")
		}
	case MediaTypeVideo:
		if merged.VideoURL == "" {
			check.errs.Add("video_url", "A video URL is required for video items.")
		}
	}
	if err := check.err(); err != nil {
		return err
	}

	*item = merged
	return nil
}

func (s *GalleryService) nextSortOrder() (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.GalleryImage{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
