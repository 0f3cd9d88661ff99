package service

import "gorm.io/gorm"

const (
	// DefaultPageSize applies when a list request omits page_size.
	DefaultPageSize = 20
	// MaxPageSize caps page_size.
	MaxPageSize = 100
)

// Pagination selects one page of a list.
type Pagination struct {
	Page     int
	PageSize int
}

// PageResult aggregates one page of items and the total count.
type PageResult[T any] struct {
	Items      []T
	Count      int64
	Page       int
	PageSize   int
	TotalPages int
}

// HasNext reports whether a following page exists.
func (r PageResult[T]) HasNext() bool {
	return r.Page < r.TotalPages
}

// HasPrevious reports whether a preceding page exists.
func (r PageResult[T]) HasPrevious() bool {
	return r.Page > 1
}

// paginate counts query and loads one page of it. findScopes apply to the
// page fetch only, e.g. preloads that must not reach the count.
func paginate[T any](query *gorm.DB, params Pagination, findScopes ...Scope) (PageResult[T], error) {
	result := PageResult[T]{
		Page:     normalizePage(params.Page),
		PageSize: normalizePerPage(params.PageSize, DefaultPageSize),
		Items:    []T{},
	}
	if result.PageSize > MaxPageSize {
		result.PageSize = MaxPageSize
	}

	if err := query.Session(&gorm.Session{}).Count(&result.Count).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Count, result.PageSize)
	offset := (result.Page - 1) * result.PageSize

	for _, scope := range findScopes {
		query = query.Scopes(scope)
	}
	if err := query.Limit(result.PageSize).Offset(offset).Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
