package db

import "time"

// SystemSetting 存储后台可配置的系统级键值对。
type SystemSetting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

// Site settings keys.
const (
	SettingKeySiteName           = "site_name"
	SettingKeySiteTagline        = "site_tagline"
	SettingKeyMaintenanceMode    = "maintenance_mode"
	SettingKeyMaintenanceMessage = "maintenance_message"
	SettingKeyHeadOfficeAddress  = "head_office_address"
	SettingKeyHeadOfficePhone    = "head_office_phone"
	SettingKeyGeneralEmail       = "general_email"
	SettingKeyCareersEmail       = "careers_email"
	SettingKeyTendersEmail       = "tenders_email"
	SettingKeyFacebook           = "facebook"
	SettingKeyTwitter            = "twitter"
	SettingKeyLinkedIn           = "linkedin"
	SettingKeyYouTube            = "youtube"
)
