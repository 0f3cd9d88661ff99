package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type applicationPayload struct {
	Career      *json.Number `json:"career" form:"career"`
	FullName    *string      `json:"full_name" form:"full_name"`
	Email       *string      `json:"email" form:"email"`
	Phone       *string      `json:"phone" form:"phone"`
	LinkedInURL *string      `json:"linkedin_url" form:"linkedin_url"`
	CoverLetter *string      `json:"cover_letter" form:"cover_letter"`
	Status      *string      `json:"status" form:"status"`
}

func (p applicationPayload) toInput() service.JobApplicationInput {
	input := service.JobApplicationInput{
		FullName:    p.FullName,
		Email:       p.Email,
		Phone:       p.Phone,
		LinkedInURL: p.LinkedInURL,
		CoverLetter: p.CoverLetter,
		Status:      p.Status,
	}
	if p.Career != nil {
		career := p.Career.String()
		input.CareerID = &career
	}
	return input
}

type applicationOutput struct {
	ID          uint      `json:"id"`
	Career      uint      `json:"career"`
	CareerTitle string    `json:"career_title"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	LinkedInURL string    `json:"linkedin_url"`
	Resume      string    `json:"resume"`
	CoverLetter string    `json:"cover_letter"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func applicationShape(j db.JobApplication) applicationOutput {
	return applicationOutput{
		ID:          j.ID,
		Career:      j.CareerID,
		CareerTitle: j.Career.Title,
		FullName:    j.FullName,
		Email:       j.Email,
		Phone:       j.Phone,
		LinkedInURL: j.LinkedInURL,
		Resume:      j.Resume,
		CoverLetter: j.CoverLetter,
		Status:      j.Status,
		SubmittedAt: j.SubmittedAt,
	}
}

// ListApplications 返回求职申请，支持 career 与 status 过滤。
func (a *API) ListApplications(c *gin.Context) {
	result, err := a.applications.List(service.JobApplicationFilter{
		CareerID:   uint(parsePositiveInt(c.Query("career"), 0)),
		Status:     c.Query("status"),
		Pagination: a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, applicationShape))
}

func (a *API) GetApplication(c *gin.Context) {
	item, err := a.applications.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicationShape(*item))
}

// CreateApplication backs both the admin collection and the public apply
// form; a new application is always pending.
func (a *API) CreateApplication(c *gin.Context) {
	input, ok := a.applicationInput(c)
	if !ok {
		return
	}
	item, err := a.applications.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, applicationShape(*item))
}

func (a *API) UpdateApplication(c *gin.Context) {
	input, ok := a.applicationInput(c)
	if !ok {
		return
	}
	item, err := a.applications.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicationShape(*item))
}

func (a *API) DeleteApplication(c *gin.Context) {
	if err := a.applications.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) applicationInput(c *gin.Context) (service.JobApplicationInput, bool) {
	var payload applicationPayload
	if !bindPayload(c, &payload) {
		return service.JobApplicationInput{}, false
	}
	input := payload.toInput()

	resume, err := a.storeUpload(c, "resume", "resumes", storage.KindDocument)
	if err != nil {
		respondServiceError(c, err)
		return service.JobApplicationInput{}, false
	}
	input.Resume = uploadURL(resume)
	return input, true
}
