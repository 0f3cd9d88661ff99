package db

import "time"

// CompanyInfoRowID is the fixed key of the single company_info row.
const CompanyInfoRowID uint = 1

// CompanyInfo holds the company profile shown across the site. The table
// only ever contains the row keyed by CompanyInfoRowID.
type CompanyInfo struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"size:200;default:BIFPCL"`
	Tagline          string `gorm:"size:300"`
	Description      string `gorm:"type:text"`
	TotalCapacityMW  int    `gorm:"default:1320"`
	Technology       string `gorm:"size:100"`
	PartnershipRatio string `gorm:"size:20"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName 指定自定义表名。
func (CompanyInfo) TableName() string {
	return "company_info"
}

// Project is a power plant project.
type Project struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"size:200;not null"`
	Slug              string `gorm:"size:200;uniqueIndex;not null"`
	Location          string `gorm:"size:200"`
	CapacityMW        int
	Technology        string `gorm:"size:100"`
	Status            string `gorm:"size:50;default:operational;index"`
	Description       string `gorm:"type:text"`
	HeroImage         string `gorm:"size:500"`
	Latitude          *float64
	Longitude         *float64
	EfficiencyPercent *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Director is a member of the board.
type Director struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:200;not null"`
	Title        string `gorm:"size:200"`
	Organization string `gorm:"size:200"`
	Photo        string `gorm:"size:500"`
	Bio          string `gorm:"type:text"`
	Order        int    `gorm:"column:sort_order;default:0"`
	IsChairman   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewsArticle is a press release or news item.
type NewsArticle struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:300;not null"`
	Slug          string `gorm:"size:200;uniqueIndex;not null"`
	Category      string `gorm:"size:20;index"`
	Excerpt       string `gorm:"size:500"`
	Content       string `gorm:"type:text"`
	Image         string `gorm:"size:500"`
	PublishedDate time.Time
	IsFeatured    bool `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CSRInitiative describes a sustainability or community programme.
type CSRInitiative struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"size:200;not null"`
	Category     string `gorm:"size:50"`
	Description  string `gorm:"type:text"`
	ImpactMetric string `gorm:"size:100"`
	Image        string `gorm:"size:500"`
	Order        int    `gorm:"column:sort_order;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 指定自定义表名。
func (CSRInitiative) TableName() string {
	return "csr_initiatives"
}

// Notice is an entry on the notice board.
type Notice struct {
	ID             uint   `gorm:"primaryKey"`
	Title          string `gorm:"size:500;not null"`
	Slug           string `gorm:"size:200;uniqueIndex;not null"`
	Category       string `gorm:"size:20;default:general;index"`
	Excerpt        string `gorm:"type:text"`
	Content        string `gorm:"type:text"`
	PublishedDate  time.Time
	Document       string `gorm:"size:500"`
	AttachmentName string `gorm:"size:255"`
	Link           string `gorm:"size:500"`
	IsActive       bool   `gorm:"index"`
	IsFeatured     bool   `gorm:"index"`
	Order          int    `gorm:"column:sort_order;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GalleryImage 定义媒体库中的图片或视频条目
type GalleryImage struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:200;uniqueIndex;not null"`
	Category    string `gorm:"size:20;default:project;index"`
	MediaType   string `gorm:"size:10;default:image;index"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:500"`
	ImageWidth  int
	ImageHeight int
	VideoURL    string `gorm:"size:500"`
	Order       int    `gorm:"column:sort_order;default:0"`
	IsFeatured  bool   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
