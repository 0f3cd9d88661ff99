package service

import (
	"strings"

	"github.com/bifpcl/internal/slug"
	"gorm.io/gorm"
)

// Slug column widths per resource.
const (
	projectSlugLength = 200
	newsSlugLength    = 200
	noticeSlugLength  = 200
	gallerySlugLength = 200
)

// uniqueSlug derives a free slug for model's table from source text,
// ignoring the row excludeID (zero on create).
func uniqueSlug(gdb *gorm.DB, model interface{}, kind ResourceKind, source string, maxLength int, excludeID uint) (string, error) {
	return slug.Generate(source, string(kind), maxLength, func(candidate string) (bool, error) {
		var count int64
		query := gdb.Model(model).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// assignSlugOnCreate returns the caller's slug verbatim when non-empty,
// otherwise a generated unique one.
func assignSlugOnCreate(gdb *gorm.DB, model interface{}, kind ResourceKind, supplied *string, source string, maxLength int) (string, error) {
	if supplied != nil {
		if trimmed := strings.TrimSpace(*supplied); trimmed != "" {
			return trimmed, nil
		}
	}
	return uniqueSlug(gdb, model, kind, source, maxLength, 0)
}

// applySlugOnUpdate keeps current when supplied is nil or blank and
// otherwise takes the supplied value as-is.
func applySlugOnUpdate(current string, supplied *string) string {
	if supplied == nil {
		return current
	}
	if trimmed := strings.TrimSpace(*supplied); trimmed != "" {
		return trimmed
	}
	return current
}
