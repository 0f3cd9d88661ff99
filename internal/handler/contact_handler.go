package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/gin-gonic/gin"
)

type contactPayload struct {
	FullName     *string `json:"full_name" form:"full_name"`
	Organization *string `json:"organization" form:"organization"`
	Email        *string `json:"email" form:"email"`
	Category     *string `json:"category" form:"category"`
	Message      *string `json:"message" form:"message"`
	IsResolved   *bool   `json:"is_resolved" form:"is_resolved"`
}

func (p contactPayload) toInput() service.ContactInquiryInput {
	return service.ContactInquiryInput{
		FullName:     p.FullName,
		Organization: p.Organization,
		Email:        p.Email,
		Category:     p.Category,
		Message:      p.Message,
		IsResolved:   p.IsResolved,
	}
}

type contactOutput struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	Organization string    `json:"organization"`
	Email        string    `json:"email"`
	Category     string    `json:"category"`
	Message      string    `json:"message"`
	IsResolved   bool      `json:"is_resolved"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func contactShape(i db.ContactInquiry) contactOutput {
	return contactOutput{
		ID:           i.ID,
		FullName:     i.FullName,
		Organization: i.Organization,
		Email:        i.Email,
		Category:     i.Category,
		Message:      i.Message,
		IsResolved:   i.IsResolved,
		SubmittedAt:  i.SubmittedAt,
	}
}

// ListContactInquiries 返回联系表单提交记录。
func (a *API) ListContactInquiries(c *gin.Context) {
	result, err := a.inquiries.List(service.ContactInquiryFilter{
		Category:   c.Query("category"),
		IsResolved: queryBool(c, "is_resolved"),
		Pagination: a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, contactShape))
}

func (a *API) GetContactInquiry(c *gin.Context) {
	item, err := a.inquiries.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contactShape(*item))
}

// CreateContactInquiry serves the public contact form. Visitors cannot
// mark their own inquiry as resolved.
func (a *API) CreateContactInquiry(c *gin.Context) {
	var payload contactPayload
	if !bindPayload(c, &payload) {
		return
	}
	input := payload.toInput()
	input.IsResolved = nil

	item, err := a.inquiries.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contactShape(*item))
}

func (a *API) UpdateContactInquiry(c *gin.Context) {
	var payload contactPayload
	if !bindPayload(c, &payload) {
		return
	}
	item, err := a.inquiries.Update(c.Param("id"), payload.toInput(), isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contactShape(*item))
}

func (a *API) DeleteContactInquiry(c *gin.Context) {
	if err := a.inquiries.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
