package handler

import (
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	auth         *service.AuthService
	company      *service.CompanyService
	system       *service.SystemSettingService
	projects     *service.ProjectService
	directors    *service.DirectorService
	news         *service.NewsService
	careers      *service.CareerService
	applications *service.JobApplicationService
	tenders      *service.TenderService
	inquiries    *service.ContactInquiryService
	csr          *service.CSRService
	notices      *service.NoticeService
	galleries    *service.GalleryService
	chatbot      *service.ChatbotService
	uploads      *storage.Storage
	pageSize     int
}

// Options carries the collaborators that are not derived from the database.
type Options struct {
	Uploads  *storage.Storage
	Chatbot  service.ChatbotConfig
	PageSize int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, opts Options) *API {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = service.DefaultPageSize
	}

	return &API{
		db:           db,
		auth:         service.NewAuthService(db),
		company:      service.NewCompanyService(db),
		system:       service.NewSystemSettingService(db),
		projects:     service.NewProjectService(db),
		directors:    service.NewDirectorService(db),
		news:         service.NewNewsService(db),
		careers:      service.NewCareerService(db),
		applications: service.NewJobApplicationService(db),
		tenders:      service.NewTenderService(db),
		inquiries:    service.NewContactInquiryService(db),
		csr:          service.NewCSRService(db),
		notices:      service.NewNoticeService(db),
		galleries:    service.NewGalleryService(db),
		chatbot:      service.NewChatbotService(opts.Chatbot),
		uploads:      opts.Uploads,
		pageSize:     pageSize,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Chatbot exposes the chatbot service so tests can stub its upstream.
func (a *API) Chatbot() *service.ChatbotService {
	return a.chatbot
}
