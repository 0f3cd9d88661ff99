package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/gin-gonic/gin"
)

type careerPayload struct {
	Title          *string `json:"title" form:"title"`
	Department     *string `json:"department" form:"department"`
	Location       *string `json:"location" form:"location"`
	EmploymentType *string `json:"employment_type" form:"employment_type"`
	Description    *string `json:"description" form:"description"`
	Requirements   *string `json:"requirements" form:"requirements"`
	SalaryRange    *string `json:"salary_range" form:"salary_range"`
	Deadline       *string `json:"deadline" form:"deadline"`
	IsActive       *bool   `json:"is_active" form:"is_active"`
}

func (p careerPayload) toInput() service.CareerInput {
	return service.CareerInput{
		Title:          p.Title,
		Department:     p.Department,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		Description:    p.Description,
		Requirements:   p.Requirements,
		SalaryRange:    p.SalaryRange,
		Deadline:       p.Deadline,
		IsActive:       p.IsActive,
	}
}

type careerListItem struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	SalaryRange    string `json:"salary_range"`
	Deadline       string `json:"deadline"`
}

type careerDetail struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements"`
	SalaryRange    string    `json:"salary_range"`
	Deadline       string    `json:"deadline"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func careerListShape(j db.Career) careerListItem {
	return careerListItem{
		ID:             j.ID,
		Title:          j.Title,
		Department:     j.Department,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		SalaryRange:    j.SalaryRange,
		Deadline:       service.FormatDate(j.Deadline),
	}
}

func careerDetailShape(j db.Career) careerDetail {
	return careerDetail{
		ID:             j.ID,
		Title:          j.Title,
		Department:     j.Department,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Description:    j.Description,
		Requirements:   j.Requirements,
		SalaryRange:    j.SalaryRange,
		Deadline:       service.FormatDate(j.Deadline),
		IsActive:       j.IsActive,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

// ListCareers 返回招聘职位；默认只包含开放中的职位。
func (a *API) ListCareers(c *gin.Context) {
	result, err := a.careers.List(service.CareerFilter{
		IncludeInactive: includeInactive(c),
		Pagination:      a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, careerListShape))
}

func (a *API) GetCareer(c *gin.Context) {
	item, err := a.careers.Get(c.Param("id"), includeInactive(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, careerDetailShape(*item))
}

func (a *API) CreateCareer(c *gin.Context) {
	var payload careerPayload
	if !bindPayload(c, &payload) {
		return
	}
	item, err := a.careers.Create(payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, careerDetailShape(*item))
}

func (a *API) UpdateCareer(c *gin.Context) {
	var payload careerPayload
	if !bindPayload(c, &payload) {
		return
	}
	item, err := a.careers.Update(c.Param("id"), payload.toInput(), isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, careerDetailShape(*item))
}

// DeleteCareer removes the listing together with its applications.
func (a *API) DeleteCareer(c *gin.Context) {
	if err := a.careers.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
