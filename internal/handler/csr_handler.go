package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type csrPayload struct {
	Title        *string `json:"title" form:"title"`
	Category     *string `json:"category" form:"category"`
	Description  *string `json:"description" form:"description"`
	ImpactMetric *string `json:"impact_metric" form:"impact_metric"`
	Order        *int    `json:"order" form:"order"`
}

func (p csrPayload) toInput() service.CSRInput {
	return service.CSRInput{
		Title:        p.Title,
		Category:     p.Category,
		Description:  p.Description,
		ImpactMetric: p.ImpactMetric,
		Order:        p.Order,
	}
}

type csrOutput struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	ImpactMetric string    `json:"impact_metric"`
	Image        string    `json:"image"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func csrShape(i db.CSRInitiative) csrOutput {
	return csrOutput{
		ID:           i.ID,
		Title:        i.Title,
		Category:     i.Category,
		Description:  i.Description,
		ImpactMetric: i.ImpactMetric,
		Image:        i.Image,
		Order:        i.Order,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ListCSRInitiatives 返回 CSR 项目列表。
func (a *API) ListCSRInitiatives(c *gin.Context) {
	result, err := a.csr.List(a.pagination(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, csrShape))
}

func (a *API) GetCSRInitiative(c *gin.Context) {
	item, err := a.csr.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, csrShape(*item))
}

func (a *API) CreateCSRInitiative(c *gin.Context) {
	input, ok := a.csrInput(c)
	if !ok {
		return
	}
	item, err := a.csr.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, csrShape(*item))
}

func (a *API) UpdateCSRInitiative(c *gin.Context) {
	input, ok := a.csrInput(c)
	if !ok {
		return
	}
	item, err := a.csr.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, csrShape(*item))
}

func (a *API) DeleteCSRInitiative(c *gin.Context) {
	if err := a.csr.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) csrInput(c *gin.Context) (service.CSRInput, bool) {
	var payload csrPayload
	if !bindPayload(c, &payload) {
		return service.CSRInput{}, false
	}
	input := payload.toInput()

	image, err := a.storeUpload(c, "image", "csr", storage.KindImage)
	if err != nil {
		respondServiceError(c, err)
		return service.CSRInput{}, false
	}
	input.Image = uploadURL(image)
	return input, true
}
