package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type tenderPayload struct {
	TenderID        *string `json:"tender_id" form:"tender_id"`
	Title           *string `json:"title" form:"title"`
	Category        *string `json:"category" form:"category"`
	Description     *string `json:"description" form:"description"`
	Status          *string `json:"status" form:"status"`
	PublicationDate *string `json:"publication_date" form:"publication_date"`
	Deadline        *string `json:"deadline" form:"deadline"`
	ValueRange      *string `json:"value_range" form:"value_range"`
}

func (p tenderPayload) toInput() service.TenderInput {
	return service.TenderInput{
		TenderID:        p.TenderID,
		Title:           p.Title,
		Category:        p.Category,
		Description:     p.Description,
		Status:          p.Status,
		PublicationDate: p.PublicationDate,
		Deadline:        p.Deadline,
		ValueRange:      p.ValueRange,
	}
}

type tenderOutput struct {
	ID              uint      `json:"id"`
	TenderID        string    `json:"tender_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	PublicationDate string    `json:"publication_date"`
	Deadline        string    `json:"deadline"`
	ValueRange      string    `json:"value_range"`
	Document        string    `json:"document"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func tenderShape(t db.Tender) tenderOutput {
	return tenderOutput{
		ID:              t.ID,
		TenderID:        t.TenderID,
		Title:           t.Title,
		Category:        t.Category,
		Description:     t.Description,
		Status:          t.Status,
		PublicationDate: service.FormatDate(t.PublicationDate),
		Deadline:        service.FormatDate(t.Deadline),
		ValueRange:      t.ValueRange,
		Document:        t.Document,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ListTenders 返回招标公告，支持 status 与 category 过滤。
func (a *API) ListTenders(c *gin.Context) {
	result, err := a.tenders.List(service.TenderFilter{
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Pagination: a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, tenderShape))
}

func (a *API) GetTender(c *gin.Context) {
	item, err := a.tenders.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenderShape(*item))
}

func (a *API) CreateTender(c *gin.Context) {
	input, ok := a.tenderInput(c)
	if !ok {
		return
	}
	item, err := a.tenders.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenderShape(*item))
}

func (a *API) UpdateTender(c *gin.Context) {
	input, ok := a.tenderInput(c)
	if !ok {
		return
	}
	item, err := a.tenders.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenderShape(*item))
}

func (a *API) DeleteTender(c *gin.Context) {
	if err := a.tenders.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) tenderInput(c *gin.Context) (service.TenderInput, bool) {
	var payload tenderPayload
	if !bindPayload(c, &payload) {
		return service.TenderInput{}, false
	}
	input := payload.toInput()

	document, err := a.storeUpload(c, "document", "tenders", storage.KindDocument)
	if err != nil {
		respondServiceError(c, err)
		return service.TenderInput{}, false
	}
	input.Document = uploadURL(document)
	return input, true
}
