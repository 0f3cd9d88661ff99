package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bifpcl/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultSiteName           = "BIFPCL"
	defaultSiteTagline        = "Powering Bangladesh's Future Together"
	defaultMaintenanceMessage = "We are currently performing scheduled maintenance. Please check back soon."
)

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	SiteName           string
	SiteTagline        string
	MaintenanceMode    bool
	MaintenanceMessage string
	HeadOfficeAddress  string
	HeadOfficePhone    string
	GeneralEmail       string
	CareersEmail       string
	TendersEmail       string
	Facebook           string
	Twitter            string
	LinkedIn           string
	YouTube            string
}

// SiteSettingsInput 用于更新站点设置；nil 字段表示未提交。
type SiteSettingsInput struct {
	SiteName           *string
	SiteTagline        *string
	MaintenanceMode    *bool
	MaintenanceMessage *string
	HeadOfficeAddress  *string
	HeadOfficePhone    *string
	GeneralEmail       *string
	CareersEmail       *string
	TendersEmail       *string
	Facebook           *string
	Twitter            *string
	LinkedIn           *string
	YouTube            *string
}

// SystemSettingService 提供站点设置的读取与更新能力。
type SystemSettingService struct {
	db *gorm.DB
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeySiteTagline,
	db.SettingKeyMaintenanceMode,
	db.SettingKeyMaintenanceMessage,
	db.SettingKeyHeadOfficeAddress,
	db.SettingKeyHeadOfficePhone,
	db.SettingKeyGeneralEmail,
	db.SettingKeyCareersEmail,
	db.SettingKeyTendersEmail,
	db.SettingKeyFacebook,
	db.SettingKeyTwitter,
	db.SettingKeyLinkedIn,
	db.SettingKeyYouTube,
}

func defaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:           defaultSiteName,
		SiteTagline:        defaultSiteTagline,
		MaintenanceMessage: defaultMaintenanceMessage,
	}
}

// GetSettings 读取站点设置，未设置的键返回默认值。
func (s *SystemSettingService) GetSettings() (SiteSettings, error) {
	result := defaultSiteSettings()

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	fields := result.fields()
	for _, record := range records {
		if record.Key == db.SettingKeyMaintenanceMode {
			result.MaintenanceMode, _ = strconv.ParseBool(record.Value)
			continue
		}
		if dst, ok := fields[record.Key]; ok {
			*dst = record.Value
		}
	}
	if strings.TrimSpace(result.SiteName) == "" {
		result.SiteName = defaultSiteName
	}
	return result, nil
}

// UpdateSettings 保存提交的设置项。partial 为 false 时未提交的字段恢复默认值。
func (s *SystemSettingService) UpdateSettings(input SiteSettingsInput, partial bool) (SiteSettings, error) {
	check := newFieldChecker(true)
	check.maxLength("site_name", input.SiteName, 200)
	check.email("general_email", input.GeneralEmail, false)
	check.email("careers_email", input.CareersEmail, false)
	check.email("tenders_email", input.TendersEmail, false)
	check.url("facebook", input.Facebook)
	check.url("twitter", input.Twitter)
	check.url("linkedin", input.LinkedIn)
	check.url("youtube", input.YouTube)
	if err := check.err(); err != nil {
		return SiteSettings{}, err
	}

	current := defaultSiteSettings()
	if partial {
		loaded, err := s.GetSettings()
		if err != nil {
			return SiteSettings{}, err
		}
		current = loaded
	}

	fields := current.fields()
	for key, value := range input.values() {
		if value != nil {
			*fields[key] = strings.TrimSpace(*value)
		}
	}
	setBool(&current.MaintenanceMode, input.MaintenanceMode)
	if strings.TrimSpace(current.SiteName) == "" {
		current.SiteName = defaultSiteName
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, dst := range current.fields() {
			if err := upsertSetting(tx, key, *dst); err != nil {
				return err
			}
		}
		return upsertSetting(tx, db.SettingKeyMaintenanceMode, strconv.FormatBool(current.MaintenanceMode))
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return current, nil
}

// fields maps each string setting key to its field.
func (s *SiteSettings) fields() map[string]*string {
	return map[string]*string{
		db.SettingKeySiteName:           &s.SiteName,
		db.SettingKeySiteTagline:        &s.SiteTagline,
		db.SettingKeyMaintenanceMessage: &s.MaintenanceMessage,
		db.SettingKeyHeadOfficeAddress:  &s.HeadOfficeAddress,
		db.SettingKeyHeadOfficePhone:    &s.HeadOfficePhone,
		db.SettingKeyGeneralEmail:       &s.GeneralEmail,
		db.SettingKeyCareersEmail:       &s.CareersEmail,
		db.SettingKeyTendersEmail:       &s.TendersEmail,
		db.SettingKeyFacebook:           &s.Facebook,
		db.SettingKeyTwitter:            &s.Twitter,
		db.SettingKeyLinkedIn:           &s.LinkedIn,
		db.SettingKeyYouTube:            &s.YouTube,
	}
}

func (in SiteSettingsInput) values() map[string]*string {
	return map[string]*string{
		db.SettingKeySiteName:           in.SiteName,
		db.SettingKeySiteTagline:        in.SiteTagline,
		db.SettingKeyMaintenanceMessage: in.MaintenanceMessage,
		db.SettingKeyHeadOfficeAddress:  in.HeadOfficeAddress,
		db.SettingKeyHeadOfficePhone:    in.HeadOfficePhone,
		db.SettingKeyGeneralEmail:       in.GeneralEmail,
		db.SettingKeyCareersEmail:       in.CareersEmail,
		db.SettingKeyTendersEmail:       in.TendersEmail,
		db.SettingKeyFacebook:           in.Facebook,
		db.SettingKeyTwitter:            in.Twitter,
		db.SettingKeyLinkedIn:           in.LinkedIn,
		db.SettingKeyYouTube:            in.YouTube,
	}
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
