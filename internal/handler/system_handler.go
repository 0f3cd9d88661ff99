package handler

import (
	"net/http"

	"github.com/bifpcl/internal/service"
	"github.com/gin-gonic/gin"
)

const serviceName = "bifpcl-api"

// HealthCheck 提供部署平台与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "error",
			"service":  serviceName,
			"database": "unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "error",
			"service":  serviceName,
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  serviceName,
		"database": "up",
	})
}

type siteSettingsPayload struct {
	SiteName           *string `json:"site_name" form:"site_name"`
	SiteTagline        *string `json:"site_tagline" form:"site_tagline"`
	MaintenanceMode    *bool   `json:"maintenance_mode" form:"maintenance_mode"`
	MaintenanceMessage *string `json:"maintenance_message" form:"maintenance_message"`
	HeadOfficeAddress  *string `json:"head_office_address" form:"head_office_address"`
	HeadOfficePhone    *string `json:"head_office_phone" form:"head_office_phone"`
	GeneralEmail       *string `json:"general_email" form:"general_email"`
	CareersEmail       *string `json:"careers_email" form:"careers_email"`
	TendersEmail       *string `json:"tenders_email" form:"tenders_email"`
	Facebook           *string `json:"facebook" form:"facebook"`
	Twitter            *string `json:"twitter" form:"twitter"`
	LinkedIn           *string `json:"linkedin" form:"linkedin"`
	YouTube            *string `json:"youtube" form:"youtube"`
}

func (p siteSettingsPayload) toInput() service.SiteSettingsInput {
	return service.SiteSettingsInput{
		SiteName:           p.SiteName,
		SiteTagline:        p.SiteTagline,
		MaintenanceMode:    p.MaintenanceMode,
		MaintenanceMessage: p.MaintenanceMessage,
		HeadOfficeAddress:  p.HeadOfficeAddress,
		HeadOfficePhone:    p.HeadOfficePhone,
		GeneralEmail:       p.GeneralEmail,
		CareersEmail:       p.CareersEmail,
		TendersEmail:       p.TendersEmail,
		Facebook:           p.Facebook,
		Twitter:            p.Twitter,
		LinkedIn:           p.LinkedIn,
		YouTube:            p.YouTube,
	}
}

type siteSettingsOutput struct {
	SiteName           string `json:"site_name"`
	SiteTagline        string `json:"site_tagline"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	MaintenanceMessage string `json:"maintenance_message"`
	HeadOfficeAddress  string `json:"head_office_address"`
	HeadOfficePhone    string `json:"head_office_phone"`
	GeneralEmail       string `json:"general_email"`
	CareersEmail       string `json:"careers_email"`
	TendersEmail       string `json:"tenders_email"`
	Facebook           string `json:"facebook"`
	Twitter            string `json:"twitter"`
	LinkedIn           string `json:"linkedin"`
	YouTube            string `json:"youtube"`
}

func siteSettingsShape(s service.SiteSettings) siteSettingsOutput {
	return siteSettingsOutput{
		SiteName:           s.SiteName,
		SiteTagline:        s.SiteTagline,
		MaintenanceMode:    s.MaintenanceMode,
		MaintenanceMessage: s.MaintenanceMessage,
		HeadOfficeAddress:  s.HeadOfficeAddress,
		HeadOfficePhone:    s.HeadOfficePhone,
		GeneralEmail:       s.GeneralEmail,
		CareersEmail:       s.CareersEmail,
		TendersEmail:       s.TendersEmail,
		Facebook:           s.Facebook,
		Twitter:            s.Twitter,
		LinkedIn:           s.LinkedIn,
		YouTube:            s.YouTube,
	}
}

// GetSystemSettings 返回站点设置。
func (a *API) GetSystemSettings(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, siteSettingsShape(settings))
}

// UpdateSystemSettings 保存站点设置；PATCH 只更新提交的字段。
func (a *API) UpdateSystemSettings(c *gin.Context) {
	var payload siteSettingsPayload
	if !bindPayload(c, &payload) {
		return
	}

	settings, err := a.system.UpdateSettings(payload.toInput(), isPartial(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, siteSettingsShape(settings))
}
