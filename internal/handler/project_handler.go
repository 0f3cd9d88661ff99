package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type projectPayload struct {
	Name              *string  `json:"name" form:"name"`
	Slug              *string  `json:"slug" form:"slug"`
	Location          *string  `json:"location" form:"location"`
	CapacityMW        *int     `json:"capacity_mw" form:"capacity_mw"`
	Technology        *string  `json:"technology" form:"technology"`
	Status            *string  `json:"status" form:"status"`
	Description       *string  `json:"description" form:"description"`
	Latitude          *float64 `json:"latitude" form:"latitude"`
	Longitude         *float64 `json:"longitude" form:"longitude"`
	EfficiencyPercent *float64 `json:"efficiency_percent" form:"efficiency_percent"`
}

func (p projectPayload) toInput() service.ProjectInput {
	return service.ProjectInput{
		Name:              p.Name,
		Slug:              p.Slug,
		Location:          p.Location,
		CapacityMW:        p.CapacityMW,
		Technology:        p.Technology,
		Status:            p.Status,
		Description:       p.Description,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		EfficiencyPercent: p.EfficiencyPercent,
	}
}

type projectListItem struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Location   string `json:"location"`
	CapacityMW int    `json:"capacity_mw"`
	Status     string `json:"status"`
	HeroImage  string `json:"hero_image"`
}

type projectDetail struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Location          string    `json:"location"`
	CapacityMW        int       `json:"capacity_mw"`
	Technology        string    `json:"technology"`
	Status            string    `json:"status"`
	Description       string    `json:"description"`
	HeroImage         string    `json:"hero_image"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	EfficiencyPercent *float64  `json:"efficiency_percent"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func projectListShape(p db.Project) projectListItem {
	return projectListItem{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		Location:   p.Location,
		CapacityMW: p.CapacityMW,
		Status:     p.Status,
		HeroImage:  p.HeroImage,
	}
}

func projectDetailShape(p db.Project) projectDetail {
	return projectDetail{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Location:          p.Location,
		CapacityMW:        p.CapacityMW,
		Technology:        p.Technology,
		Status:            p.Status,
		Description:       p.Description,
		HeroImage:         p.HeroImage,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		EfficiencyPercent: p.EfficiencyPercent,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ListProjects 返回项目列表。
func (a *API) ListProjects(c *gin.Context) {
	result, err := a.projects.List(service.ProjectFilter{
		Status:     c.Query("status"),
		Pagination: a.pagination(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, projectListShape))
}

// GetProject 按 slug 返回项目详情。
func (a *API) GetProject(c *gin.Context) {
	item, err := a.projects.Get(c.Param("id"), service.OperationRead)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectDetailShape(*item))
}

// CreateProject 创建项目。
func (a *API) CreateProject(c *gin.Context) {
	input, ok := a.projectInput(c)
	if !ok {
		return
	}
	item, err := a.projects.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectDetailShape(*item))
}

// UpdateProject handles both PUT and PATCH.
func (a *API) UpdateProject(c *gin.Context) {
	input, ok := a.projectInput(c)
	if !ok {
		return
	}
	item, err := a.projects.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectDetailShape(*item))
}

// DeleteProject 删除项目。
func (a *API) DeleteProject(c *gin.Context) {
	if err := a.projects.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) projectInput(c *gin.Context) (service.ProjectInput, bool) {
	var payload projectPayload
	if !bindPayload(c, &payload) {
		return service.ProjectInput{}, false
	}
	input := payload.toInput()

	hero, err := a.storeUpload(c, "hero_image", "projects", storage.KindImage)
	if err != nil {
		respondServiceError(c, err)
		return service.ProjectInput{}, false
	}
	input.HeroImage = uploadURL(hero)
	return input, true
}
