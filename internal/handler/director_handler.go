package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
)

type directorPayload struct {
	Name         *string `json:"name" form:"name"`
	Title        *string `json:"title" form:"title"`
	Organization *string `json:"organization" form:"organization"`
	Bio          *string `json:"bio" form:"bio"`
	Order        *int    `json:"order" form:"order"`
	IsChairman   *bool   `json:"is_chairman" form:"is_chairman"`
}

func (p directorPayload) toInput() service.DirectorInput {
	return service.DirectorInput{
		Name:         p.Name,
		Title:        p.Title,
		Organization: p.Organization,
		Bio:          p.Bio,
		Order:        p.Order,
		IsChairman:   p.IsChairman,
	}
}

type directorOutput struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Photo        string    `json:"photo"`
	Bio          string    `json:"bio"`
	Order        int       `json:"order"`
	IsChairman   bool      `json:"is_chairman"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func directorShape(d db.Director) directorOutput {
	return directorOutput{
		ID:           d.ID,
		Name:         d.Name,
		Title:        d.Title,
		Organization: d.Organization,
		Photo:        d.Photo,
		Bio:          d.Bio,
		Order:        d.Order,
		IsChairman:   d.IsChairman,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ListDirectors 返回董事会成员。
func (a *API) ListDirectors(c *gin.Context) {
	result, err := a.directors.List(a.pagination(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, result, directorShape))
}

func (a *API) GetDirector(c *gin.Context) {
	item, err := a.directors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, directorShape(*item))
}

func (a *API) CreateDirector(c *gin.Context) {
	input, ok := a.directorInput(c)
	if !ok {
		return
	}
	item, err := a.directors.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, directorShape(*item))
}

func (a *API) UpdateDirector(c *gin.Context) {
	input, ok := a.directorInput(c)
	if !ok {
		return
	}
	item, err := a.directors.Update(c.Param("id"), input, isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, directorShape(*item))
}

func (a *API) DeleteDirector(c *gin.Context) {
	if err := a.directors.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) directorInput(c *gin.Context) (service.DirectorInput, bool) {
	var payload directorPayload
	if !bindPayload(c, &payload) {
		return service.DirectorInput{}, false
	}
	input := payload.toInput()

	photo, err := a.storeUpload(c, "photo", "directors", storage.KindImage)
	if err != nil {
		respondServiceError(c, err)
		return service.DirectorInput{}, false
	}
	input.Photo = uploadURL(photo)
	return input, true
}
