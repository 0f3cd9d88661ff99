package db

import "time"

// Career is a job listing.
type Career struct {
	ID             uint   `gorm:"primaryKey"`
	Title          string `gorm:"size:200;not null"`
	Department     string `gorm:"size:100"`
	Location       string `gorm:"size:200"`
	EmploymentType string `gorm:"size:50;default:full_time"`
	Description    string `gorm:"type:text"`
	Requirements   string `gorm:"type:text"`
	SalaryRange    string `gorm:"size:100"`
	Deadline       time.Time
	IsActive       bool `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JobApplication is a candidate's submission against a career listing.
// Applications are removed together with their career.
type JobApplication struct {
	ID          uint   `gorm:"primaryKey"`
	CareerID    uint   `gorm:"index;not null"`
	Career      Career `gorm:"constraint:OnDelete:CASCADE"`
	FullName    string `gorm:"size:200;not null"`
	Email       string `gorm:"size:254;not null"`
	Phone       string `gorm:"size:20"`
	LinkedInURL string `gorm:"column:linkedin_url;size:200"`
	Resume      string `gorm:"size:500"`
	CoverLetter string `gorm:"type:text"`
	Status      string `gorm:"size:20;default:pending;index"`
	SubmittedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time
}

// Tender is a procurement notice.
type Tender struct {
	ID              uint   `gorm:"primaryKey"`
	TenderID        string `gorm:"column:tender_id;size:50;uniqueIndex;not null"`
	Title           string `gorm:"size:300;not null"`
	Category        string `gorm:"size:20;index"`
	Description     string `gorm:"type:text"`
	Status          string `gorm:"size:20;default:open;index"`
	PublicationDate time.Time
	Deadline        time.Time
	ValueRange      string `gorm:"size:100"`
	Document        string `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ContactInquiry is a submission from the public contact form.
type ContactInquiry struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:200;not null"`
	Organization string `gorm:"size:200"`
	Email        string `gorm:"size:254;not null"`
	Category     string `gorm:"size:20;index"`
	Message      string `gorm:"type:text"`
	IsResolved   bool   `gorm:"index"`
	SubmittedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}

// TableName 指定自定义表名。
func (ContactInquiry) TableName() string {
	return "contact_inquiries"
}
