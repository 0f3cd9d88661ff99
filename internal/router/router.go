package router

import (
	"net/http"
	"strings"

	"github.com/bifpcl/internal/handler"
	"github.com/bifpcl/internal/middleware"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionName = "bifpcl_session"

// Options controls the engine-level wiring around the API handlers.
type Options struct {
	SessionSecret string
	// UploadDir is served under UploadURLPath when both are set; leave them
	// empty when uploads live in object storage.
	UploadDir     string
	UploadURLPath string
	Logger        *logrus.Logger
}

// resource groups the handlers of one REST collection.
type resource struct {
	list, get, create, update, remove gin.HandlerFunc
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	// 配置会话中间件
	secret := opts.SessionSecret
	if secret == "" {
		secret = "bifpcl-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 7, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	// 上传文件
	if opts.UploadDir != "" && opts.UploadURLPath != "" {
		r.Static("/"+strings.Trim(opts.UploadURLPath, "/"), opts.UploadDir)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})

	root := r.Group("/api")
	handle(root, http.MethodGet, "/health", api.HealthCheck)

	auth := root.Group("/auth")
	handle(auth, http.MethodPost, "/login", api.Login)
	handle(auth, http.MethodPost, "/logout", api.Logout)
	handle(auth, http.MethodGet, "/me", api.CurrentUser)

	// 公开提交入口
	handle(root, http.MethodPost, "/apply", api.CreateApplication)
	handle(root, http.MethodPost, "/contact", api.CreateContactInquiry)
	handle(root, http.MethodPost, "/chat", api.Chat)

	content := root.Group("", middleware.ReadOnlyUnlessAdmin())
	singleton(content, "/company", api.GetCompanyInfo, api.UpdateCompanyInfo)
	singleton(content, "/settings", api.GetSystemSettings, api.UpdateSystemSettings)

	handle(content, http.MethodGet, "/news/featured", api.FeaturedNews)
	handle(content, http.MethodGet, "/notices/featured", api.FeaturedNotices)
	handle(content, http.MethodGet, "/gallery/featured", api.FeaturedGalleryImages)

	register(content, "/projects", resource{api.ListProjects, api.GetProject, api.CreateProject, api.UpdateProject, api.DeleteProject})
	register(content, "/directors", resource{api.ListDirectors, api.GetDirector, api.CreateDirector, api.UpdateDirector, api.DeleteDirector})
	register(content, "/news", resource{api.ListNews, api.GetNews, api.CreateNews, api.UpdateNews, api.DeleteNews})
	register(content, "/careers", resource{api.ListCareers, api.GetCareer, api.CreateCareer, api.UpdateCareer, api.DeleteCareer})
	register(content, "/tenders", resource{api.ListTenders, api.GetTender, api.CreateTender, api.UpdateTender, api.DeleteTender})
	register(content, "/csr", resource{api.ListCSRInitiatives, api.GetCSRInitiative, api.CreateCSRInitiative, api.UpdateCSRInitiative, api.DeleteCSRInitiative})
	register(content, "/notices", resource{api.ListNotices, api.GetNotice, api.CreateNotice, api.UpdateNotice, api.DeleteNotice})
	register(content, "/gallery", resource{api.ListGalleryImages, api.GetGalleryImage, api.CreateGalleryImage, api.UpdateGalleryImage, api.DeleteGalleryImage})

	// 后台专用集合
	private := root.Group("", middleware.AdminRequired())
	register(private, "/applications", resource{api.ListApplications, api.GetApplication, api.CreateApplication, api.UpdateApplication, api.DeleteApplication})
	register(private, "/contact-inquiries", resource{api.ListContactInquiries, api.GetContactInquiry, api.CreateContactInquiry, api.UpdateContactInquiry, api.DeleteContactInquiry})

	return r
}

// handle registers path with and without a trailing slash.
func handle(g *gin.RouterGroup, method, path string, h gin.HandlerFunc) {
	path = strings.TrimRight(path, "/")
	g.Handle(method, path, h)
	g.Handle(method, path+"/", h)
}

func register(g *gin.RouterGroup, path string, res resource) {
	item := path + "/:id"
	handle(g, http.MethodGet, path, res.list)
	handle(g, http.MethodPost, path, res.create)
	handle(g, http.MethodGet, item, res.get)
	handle(g, http.MethodPut, item, res.update)
	handle(g, http.MethodPatch, item, res.update)
	handle(g, http.MethodDelete, item, res.remove)
}

func singleton(g *gin.RouterGroup, path string, get, update gin.HandlerFunc) {
	handle(g, http.MethodGet, path, get)
	handle(g, http.MethodPut, path, update)
	handle(g, http.MethodPatch, path, update)
}
