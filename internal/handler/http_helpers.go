package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bifpcl/internal/middleware"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps service and storage errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	var (
		notFound   *service.NotFoundError
		conflict   *service.ConflictError
		validation service.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, validation)
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":        conflict.Error(),
			conflict.Field: []string{conflict.Error()},
		})
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindPayload decodes a JSON, urlencoded or multipart body into dst. An
// empty body leaves dst untouched.
func bindPayload(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body: " + err.Error()})
		return false
	}
	return true
}

func isPartial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// storeUpload saves the multipart file in field, if one was sent. Rejected
// files are reported as a field error on field.
func (a *API) storeUpload(c *gin.Context, field, folder string, kind storage.Kind) (*storage.FileInfo, error) {
	if !isMultipart(c) || a.uploads == nil {
		return nil, nil
	}
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, service.ValidationErrors{field: {"The submitted data was not a file."}}
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := a.uploads.Save(c.Request.Context(), folder, header.Filename, file, kind)
	switch {
	case err == nil:
		return info, nil
	case errors.Is(err, storage.ErrEmptyFile):
		return nil, service.ValidationErrors{field: {"The submitted file is empty."}}
	case errors.Is(err, storage.ErrFileTooLarge):
		return nil, service.ValidationErrors{field: {"The submitted file is too large."}}
	case errors.Is(err, storage.ErrUnsupportedType):
		if kind == storage.KindImage {
			return nil, service.ValidationErrors{field: {"Upload a valid image. The file you uploaded was either not an image or a corrupted image."}}
		}
		return nil, service.ValidationErrors{field: {"Unsupported file type."}}
	default:
		return nil, err
	}
}

func uploadURL(info *storage.FileInfo) *string {
	if info == nil {
		return nil
	}
	return &info.URL
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func (a *API) pagination(c *gin.Context) service.Pagination {
	return service.Pagination{
		Page:     parsePositiveInt(c.Query("page"), 1),
		PageSize: parsePositiveInt(c.Query("page_size"), a.pageSize),
	}
}

// isTruthy accepts 1, true, yes and on.
func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func isFalsy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false", "no", "off":
		return true
	}
	return false
}

// queryBool returns nil unless key holds a recognised boolean.
func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	switch {
	case isTruthy(raw):
		v := true
		return &v
	case isFalsy(raw):
		v := false
		return &v
	}
	return nil
}

// includeInactive reports whether inactive rows are visible: with an
// explicit truthy all flag, or for an admin session.
func includeInactive(c *gin.Context) bool {
	return isTruthy(c.Query("all")) || middleware.IsAdmin(c)
}

// pageEnvelope renders a page as {count, next, previous, results}.
func pageEnvelope[T any, O any](c *gin.Context, result service.PageResult[T], shape func(T) O) gin.H {
	results := make([]O, 0, len(result.Items))
	for _, item := range result.Items {
		results = append(results, shape(item))
	}

	var next, previous *string
	if result.HasNext() {
		link := pageURL(c, result.Page+1)
		next = &link
	}
	if result.HasPrevious() {
		link := pageURL(c, result.Page-1)
		previous = &link
	}

	return gin.H{
		"count":    result.Count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	query := u.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()

	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + u.RequestURI()
}

func shapeAll[T any, O any](items []T, shape func(T) O) []O {
	out := make([]O, 0, len(items))
	for _, item := range items {
		out = append(out, shape(item))
	}
	return out
}
