package handler

import (
	"net/http"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/gin-gonic/gin"
)

type companyPayload struct {
	Name             *string `json:"name" form:"name"`
	Tagline          *string `json:"tagline" form:"tagline"`
	Description      *string `json:"description" form:"description"`
	TotalCapacityMW  *int    `json:"total_capacity_mw" form:"total_capacity_mw"`
	Technology       *string `json:"technology" form:"technology"`
	PartnershipRatio *string `json:"partnership_ratio" form:"partnership_ratio"`
}

func (p companyPayload) toInput() service.CompanyInput {
	return service.CompanyInput{
		Name:             p.Name,
		Tagline:          p.Tagline,
		Description:      p.Description,
		TotalCapacityMW:  p.TotalCapacityMW,
		Technology:       p.Technology,
		PartnershipRatio: p.PartnershipRatio,
	}
}

type companyOutput struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Tagline          string    `json:"tagline"`
	Description      string    `json:"description"`
	TotalCapacityMW  int       `json:"total_capacity_mw"`
	Technology       string    `json:"technology"`
	PartnershipRatio string    `json:"partnership_ratio"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func companyShape(info db.CompanyInfo) companyOutput {
	return companyOutput{
		ID:               info.ID,
		Name:             info.Name,
		Tagline:          info.Tagline,
		Description:      info.Description,
		TotalCapacityMW:  info.TotalCapacityMW,
		Technology:       info.Technology,
		PartnershipRatio: info.PartnershipRatio,
		CreatedAt:        info.CreatedAt,
		UpdatedAt:        info.UpdatedAt,
	}
}

// GetCompanyInfo 返回公司简介，首次访问时自动初始化。
func (a *API) GetCompanyInfo(c *gin.Context) {
	info, err := a.company.Get()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, companyShape(*info))
}

func (a *API) UpdateCompanyInfo(c *gin.Context) {
	var payload companyPayload
	if !bindPayload(c, &payload) {
		return
	}
	info, err := a.company.Update(payload.toInput(), isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, companyShape(*info))
}
