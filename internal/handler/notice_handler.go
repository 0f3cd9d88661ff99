package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type noticePayload struct {
	Title          *string `json:"title" form:"title"`
	Slug           *string `json:"slug" form:"slug"`
	Category       *string `json:"category" form:"category"`
	Excerpt        *string `json:"excerpt" form:"excerpt"`
	Content        *string `json:"content" form:"content"`
	PublishedDate  *string `json:"published_date" form:"published_date"`
	AttachmentName *string `json:"attachment_name" form:"attachment_name"`
	Link           *string `json:"link" form:"link"`
	IsActive       *bool   `json:"is_active" form:"is_active"`
	IsFeatured     *bool   `json:"is_featured" form:"is_featured"`
	Order          *int    `json:"order" form:"order"`
}

func (p noticePayload) toInput() service.NoticeInput {
	return service.NoticeInput{
		Title:          p.Title,
		Slug:           p.Slug,
		Category:       p.Category,
		Excerpt:        p.Excerpt,
		Content:        p.Content,
		PublishedDate:  p.PublishedDate,
		AttachmentName: p.AttachmentName,
		Link:           p.Link,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
		Order:          p.Order,
	}
}

type noticeListItem struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Category        string `json:"category"`
	CategoryDisplay string `json:"category_display"`
	Excerpt         string `json:"excerpt"`
	PublishedDate   string `json:"published_date"`
	Document        string `json:"document"`
	AttachmentName  string `json:"attachment_name"`
	Link            string `json:"link"`
	IsFeatured      bool   `json:"is_featured"`
}

type noticeDetail struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Category        string    `json:"category"`
	CategoryDisplay string    `json:"category_display"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"`
	ContentHTML     string    `json:"content_html"`
	PublishedDate   string    `json:"published_date"`
	Document        string    `json:"document"`
	AttachmentName  string    `json:"attachment_name"`
	Link            string    `json:"link"`
	IsActive        bool      `json:"is_active"`
	IsFeatured      bool      `json:"is_featured"`
	Order           int       `json:"order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func noticeListShape(n db.Notice) noticeListItem {
	return noticeListItem{
		ID:              n.ID,
		Title:           n.Title,
		Slug:            n.Slug,
		Category:        n.Category,
		CategoryDisplay: service.NoticeCategoryLabel(n.Category),
		Excerpt:         plainText(n.Excerpt),
		PublishedDate:   service.FormatDate(n.PublishedDate),
		Document:        n.Document,
		AttachmentName:  n.AttachmentName,
		Link:            n.Link,
		IsFeatured:      n.IsFeatured,
	}
}

func noticeDetailShape(n db.Notice) noticeDetail {
	return noticeDetail{
		ID:              n.ID,
		Title:           n.Title,
		Slug:            n.Slug,
		Category:        n.Category,
		CategoryDisplay: service.NoticeCategoryLabel(n.Category),
		Excerpt:         n.Excerpt,
		Content:         n.Content,
		ContentHTML:     renderMarkdown(n.Content),
		PublishedDate:   service.FormatDate(n.PublishedDate),
		Document:        n.Document,
		AttachmentName:  n.AttachmentName,
		Link:            n.Link,
		IsActive:        n.IsActive,
		IsFeatured:      n.IsFeatured,
		Order:           n.Order,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

// ListNotices 返回公告列表；默认只包含启用的公告。
func (a *API) ListNotices(c *gin.Context) {
	result, err := a.notices.List(service.NoticeFilter{
		IncludeInactive: includeInactive(c),
		Category:        c.Query("category"),
		IsFeatured:      queryBool(c, "is_featured"),
		Pagination:      a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, noticeListShape))
}

func (a *API) FeaturedNotices(c *gin.Context) {
	items, err := a.notices.Featured()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shapeAll(items, noticeListShape))
}

func (a *API) GetNotice(c *gin.Context) {
	item, err := a.notices.Get(c.Param("id"), service.OperationRead, includeInactive(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, noticeDetailShape(*item))
}

func (a *API) CreateNotice(c *gin.Context) {
	input, ok := a.noticeInput(c)
	if !ok {
		return
	}
	item, err := a.notices.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, noticeDetailShape(*item))
}

func (a *API) UpdateNotice(c *gin.Context) {
	input, ok := a.noticeInput(c)
	if !ok {
		return
	}
	item, err := a.notices.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, noticeDetailShape(*item))
}

func (a *API) DeleteNotice(c *gin.Context) {
	if err := a.notices.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// noticeInput binds the payload and stores an uploaded document. The
// uploaded file's own name becomes the attachment name unless one was sent.
func (a *API) noticeInput(c *gin.Context) (service.NoticeInput, bool) {
	var payload noticePayload
	if !bindPayload(c, &payload) {
		return service.NoticeInput{}, false
	}
	input := payload.toInput()

	document, err := a.storeUpload(c, "document", "notices", storage.KindDocument)
	if err != nil {
		respondServiceError(c, err)
		return service.NoticeInput{}, false
	}
	if document != nil {
		input.Document = &document.URL
		if input.AttachmentName == nil || strings.TrimSpace(*input.AttachmentName) == "" {
			name := document.OriginalName
			input.AttachmentName = &name
		}
	}
	return input, true
}
