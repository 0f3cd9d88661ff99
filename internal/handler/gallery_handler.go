package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type galleryPayload struct {
	Title       *string `json:"title" form:"title"`
	Slug        *string `json:"slug" form:"slug"`
	Category    *string `json:"category" form:"category"`
	MediaType   *string `json:"media_type" form:"media_type"`
	Description *string `json:"description" form:"description"`
	VideoURL    *string `json:"video_url" form:"video_url"`
	Order       *int    `json:"order" form:"order"`
	IsFeatured  *bool   `json:"is_featured" form:"is_featured"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	return service.GalleryInput{
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    p.Category,
		MediaType:   p.MediaType,
		Description: p.Description,
		VideoURL:    p.VideoURL,
		Order:       p.Order,
		IsFeatured:  p.IsFeatured,
	}
}

type galleryItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	MediaType   string    `json:"media_type"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ImageWidth  int       `json:"image_width"`
	ImageHeight int       `json:"image_height"`
	VideoURL    string    `json:"video_url"`
	EmbedURL    string    `json:"embed_url,omitempty"`
	Order       int       `json:"order"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}

type galleryDetail struct {
	galleryItem
	UpdatedAt time.Time `json:"updated_at"`
}

func galleryListShape(g db.GalleryImage) galleryItem {
	item := galleryItem{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Category:    g.Category,
		MediaType:   g.MediaType,
		Description: g.Description,
		Image:       g.Image,
		ImageWidth:  g.ImageWidth,
		ImageHeight: g.ImageHeight,
		VideoURL:    g.VideoURL,
		Order:       g.Order,
		IsFeatured:  g.IsFeatured,
		CreatedAt:   g.CreatedAt,
	}
	if g.MediaType == service.MediaTypeVideo {
		if embed, ok := youTubeEmbedURL(g.VideoURL); ok {
			item.EmbedURL = embed
		}
	}
	return item
}

func galleryDetailShape(g db.GalleryImage) galleryDetail {
	return galleryDetail{galleryItem: galleryListShape(g), UpdatedAt: g.UpdatedAt}
}

// ListGalleryImages returns gallery items filtered by category, media type
// and featured flag.
func (a *API) ListGalleryImages(c *gin.Context) {
	result, err := a.galleries.List(service.GalleryFilter{
		Category:   c.Query("category"),
		MediaType:  c.Query("media_type"),
		IsFeatured: queryBool(c, "is_featured"),
		Pagination: a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, galleryListShape))
}

// FeaturedGalleryImages returns the newest featured items.
func (a *API) FeaturedGalleryImages(c *gin.Context) {
	items, err := a.galleries.Featured()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shapeAll(items, galleryListShape))
}

// GetGalleryImage returns a single gallery item.
func (a *API) GetGalleryImage(c *gin.Context) {
	item, err := a.galleries.Get(c.Param("id"), service.OperationRead)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, galleryDetailShape(*item))
}

// CreateGalleryImage creates a new gallery item.
func (a *API) CreateGalleryImage(c *gin.Context) {
	input, ok := a.galleryInput(c)
	if !ok {
		return
	}
	item, err := a.galleries.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, galleryDetailShape(*item))
}

// UpdateGalleryImage updates an existing gallery item.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	input, ok := a.galleryInput(c)
	if !ok {
		return
	}
	item, err := a.galleries.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, galleryDetailShape(*item))
}

// DeleteGalleryImage removes a gallery item.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	if err := a.galleries.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// galleryInput binds the payload; an uploaded image also sets its
// measured dimensions.
func (a *API) galleryInput(c *gin.Context) (service.GalleryInput, bool) {
	var payload galleryPayload
	if !bindPayload(c, &payload) {
		return service.GalleryInput{}, false
	}
	input := payload.toInput()

	image, err := a.storeUpload(c, "image", "gallery", storage.KindImage)
	if err != nil {
		respondServiceError(c, err)
		return service.GalleryInput{}, false
	}
	if image != nil {
		width, height := image.Width, image.Height
		input.Image = &image.URL
		input.ImageWidth = &width
		input.ImageHeight = &height
	}
	return input, true
}
