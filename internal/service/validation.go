package service

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const (
	msgRequired     = "This field is required."
	msgBlank        = "This field may not be blank."
	msgInvalidEmail = "Enter a valid email address."
	msgInvalidURL   = "Enter a valid URL."
	msgInvalidDate  = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgInvalidSlug  = "Enter a valid \"slug\" consisting of letters, numbers, underscores or hyphens."
)

var (
	validate    = validator.New()
	slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// fieldChecker collects field errors for a create (partial=false) or a
// partial update. On a partial update absent fields are not required.
type fieldChecker struct {
	errs    ValidationErrors
	partial bool
}

func newFieldChecker(partial bool) *fieldChecker {
	return &fieldChecker{errs: ValidationErrors{}, partial: partial}
}

func (f *fieldChecker) err() error {
	return f.errs.Err()
}

// requiredString rejects a missing field (unless partial) and a blank one.
func (f *fieldChecker) requiredString(field string, value *string, maxLength int) {
	if value == nil {
		if !f.partial {
			f.errs.Add(field, msgRequired)
		}
		return
	}
	if strings.TrimSpace(*value) == "" {
		f.errs.Add(field, msgBlank)
		return
	}
	f.maxLength(field, value, maxLength)
}

func (f *fieldChecker) maxLength(field string, value *string, maxLength int) {
	if value == nil || maxLength <= 0 {
		return
	}
	if n := len([]rune(strings.TrimSpace(*value))); n > maxLength {
		f.errs.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLength))
	}
}

func (f *fieldChecker) requiredValue(field string, present bool) {
	if !present && !f.partial {
		f.errs.Add(field, msgRequired)
	}
}

func (f *fieldChecker) email(field string, value *string, required bool) {
	if required {
		f.requiredString(field, value, 254)
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	if err := validate.Var(strings.TrimSpace(*value), "email"); err != nil {
		f.errs.Add(field, msgInvalidEmail)
	}
}

func (f *fieldChecker) url(field string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	if err := validate.Var(strings.TrimSpace(*value), "url"); err != nil {
		f.errs.Add(field, msgInvalidURL)
	}
}

func (f *fieldChecker) choice(field string, value *string, required bool, choices ...string) {
	if value == nil {
		if required && !f.partial {
			f.errs.Add(field, msgRequired)
		}
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" && !required {
		return
	}
	if !slices.Contains(choices, trimmed) {
		f.errs.Add(field, fmt.Sprintf("%q is not a valid choice.", trimmed))
	}
}

func (f *fieldChecker) slug(field string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return
	}
	if !slugPattern.MatchString(trimmed) {
		f.errs.Add(field, msgInvalidSlug)
		return
	}
	f.maxLength(field, &trimmed, 200)
}

// date parses value when present; required dates must be supplied on create.
func (f *fieldChecker) date(field string, value *string, required bool) time.Time {
	if value == nil {
		if required && !f.partial {
			f.errs.Add(field, msgRequired)
		}
		return time.Time{}
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		if required {
			f.errs.Add(field, msgInvalidDate)
		}
		return time.Time{}
	}
	parsed, err := ParseDate(trimmed)
	if err != nil {
		f.errs.Add(field, msgInvalidDate)
		return time.Time{}
	}
	return parsed
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

func setStringOr(dst *string, value *string, fallback string) {
	if value == nil {
		return
	}
	if v := strings.TrimSpace(*value); v != "" {
		*dst = v
		return
	}
	*dst = fallback
}

func setInt(dst *int, value *int) {
	if value != nil {
		*dst = *value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

func setDate(dst *time.Time, value *string, parsed time.Time) {
	if value != nil && strings.TrimSpace(*value) != "" {
		*dst = parsed
	}
}
