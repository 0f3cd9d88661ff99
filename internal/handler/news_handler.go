package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type newsPayload struct {
	Title         *string `json:"title" form:"title"`
	Slug          *string `json:"slug" form:"slug"`
	Category      *string `json:"category" form:"category"`
	Excerpt       *string `json:"excerpt" form:"excerpt"`
	Content       *string `json:"content" form:"content"`
	PublishedDate *string `json:"published_date" form:"published_date"`
	IsFeatured    *bool   `json:"is_featured" form:"is_featured"`
}

func (p newsPayload) toInput() service.NewsInput {
	return service.NewsInput{
		Title:         p.Title,
		Slug:          p.Slug,
		Category:      p.Category,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		PublishedDate: p.PublishedDate,
		IsFeatured:    p.IsFeatured,
	}
}

type newsListItem struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Category      string `json:"category"`
	Excerpt       string `json:"excerpt"`
	Image         string `json:"image"`
	PublishedDate string `json:"published_date"`
	IsFeatured    bool   `json:"is_featured"`
}

type newsDetail struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Category      string    `json:"category"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	Image         string    `json:"image"`
	PublishedDate string    `json:"published_date"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newsListShape(n db.NewsArticle) newsListItem {
	return newsListItem{
		ID:            n.ID,
		Title:         n.Title,
		Slug:          n.Slug,
		Category:      n.Category,
		Excerpt:       plainText(n.Excerpt),
		Image:         n.Image,
		PublishedDate: service.FormatDate(n.PublishedDate),
		IsFeatured:    n.IsFeatured,
	}
}

func newsDetailShape(n db.NewsArticle) newsDetail {
	return newsDetail{
		ID:            n.ID,
		Title:         n.Title,
		Slug:          n.Slug,
		Category:      n.Category,
		Excerpt:       n.Excerpt,
		Content:       n.Content,
		ContentHTML:   renderMarkdown(n.Content),
		Image:         n.Image,
		PublishedDate: service.FormatDate(n.PublishedDate),
		IsFeatured:    n.IsFeatured,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

// ListNews 返回新闻列表，支持 category 与 is_featured 过滤。
func (a *API) ListNews(c *gin.Context) {
	result, err := a.news.List(service.NewsFilter{
		Category:   c.Query("category"),
		IsFeatured: queryBool(c, "is_featured"),
		Pagination: a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, newsListShape))
}

// FeaturedNews 返回首页推荐新闻。
func (a *API) FeaturedNews(c *gin.Context) {
	items, err := a.news.Featured()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shapeAll(items, newsListShape))
}

// GetNews 按 slug 返回新闻详情。
func (a *API) GetNews(c *gin.Context) {
	item, err := a.news.Get(c.Param("id"), service.OperationRead)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newsDetailShape(*item))
}

func (a *API) CreateNews(c *gin.Context) {
	input, ok := a.newsInput(c)
	if !ok {
		return
	}
	item, err := a.news.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newsDetailShape(*item))
}

func (a *API) UpdateNews(c *gin.Context) {
	input, ok := a.newsInput(c)
	if !ok {
		return
	}
	item, err := a.news.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newsDetailShape(*item))
}

func (a *API) DeleteNews(c *gin.Context) {
	if err := a.news.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) newsInput(c *gin.Context) (service.NewsInput, bool) {
	var payload newsPayload
	if !bindPayload(c, &payload) {
		return service.NewsInput{}, false
	}
	input := payload.toInput()

	image, err := a.storeUpload(c, "image", "news", storage.KindImage)
	if err != nil {
		respondServiceError(c, err)
		return service.NewsInput{}, false
	}
	input.Image = uploadURL(image)
	return input, true
}
