package service

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ResourceKind names a resource type in user-facing messages.
type ResourceKind string

const (
	KindCompanyInfo    ResourceKind = "Company info"
	KindProject        ResourceKind = "Project"
	KindDirector       ResourceKind = "Director"
	KindNewsArticle    ResourceKind = "News article"
	KindCareer         ResourceKind = "Career"
	KindJobApplication ResourceKind = "Job application"
	KindTender         ResourceKind = "Tender"
	KindContactInquiry ResourceKind = "Contact inquiry"
	KindCSRInitiative  ResourceKind = "CSR initiative"
	KindNotice         ResourceKind = "Notice"
	KindGalleryImage   ResourceKind = "Gallery image"
)

// Operation tells the resolver how the looked-up record will be used.
type Operation int

const (
	// OperationRead covers list/retrieve and public lookups.
	OperationRead Operation = iota
	// OperationMutate covers update, partial update and delete.
	OperationMutate
)

// ResolutionKey is the lexical interpretation of a path identifier.
type ResolutionKey struct {
	Numeric bool
	ID      uint
	Slug    string
}

// ParseKey classifies identifier as a numeric primary key or a slug. The
// slug form is always kept so a numeric-looking slug stays reachable.
func ParseKey(identifier string) ResolutionKey {
	trimmed := strings.TrimSpace(identifier)
	key := ResolutionKey{Slug: trimmed}
	if id, err := strconv.ParseUint(trimmed, 10, 64); err == nil && id > 0 {
		key.Numeric = true
		key.ID = uint(id)
	}
	return key
}

// Scope narrows a collection before resolution, for example to active rows.
type Scope func(*gorm.DB) *gorm.DB

func allRows(tx *gorm.DB) *gorm.DB {
	return tx
}

// resolveRecord maps a path identifier to exactly one record of T inside
// the scoped collection. Mutations with a numeric identifier try the
// primary key first; everything else, including a primary-key miss, falls
// through to slug equality.
func resolveRecord[T any](gdb *gorm.DB, scope Scope, kind ResourceKind, identifier string, op Operation) (*T, error) {
	if scope == nil {
		scope = allRows
	}

	key := ParseKey(identifier)
	if key.Slug == "" {
		return nil, notFound(kind)
	}

	if op == OperationMutate && key.Numeric {
		var item T
		err := gdb.Scopes(scope).Where("id = ?", key.ID).Take(&item).Error
		if err == nil {
			return &item, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var item T
	if err := gdb.Scopes(scope).Where("slug = ?", key.Slug).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(kind)
		}
		return nil, err
	}
	return &item, nil
}

// findByID loads a record of T by primary key for resources without slugs.
func findByID[T any](gdb *gorm.DB, scope Scope, kind ResourceKind, identifier string) (*T, error) {
	if scope == nil {
		scope = allRows
	}

	key := ParseKey(identifier)
	if !key.Numeric {
		return nil, notFound(kind)
	}

	var item T
	if err := gdb.Scopes(scope).Where("id = ?", key.ID).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(kind)
		}
		return nil, err
	}
	return &item, nil
}
