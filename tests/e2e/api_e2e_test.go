package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"

	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/handler"
	"github.com/bifpcl/internal/router"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	uploadDir string
	adminPass string
	user      db.User
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

type page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("public endpoints", suite.testPublicEndpoints)
	suite.login(t)
	t.Run("slugged notices", suite.testNoticeLifecycle)
	t.Run("project slugs", suite.testProjectSlugs)
	t.Run("gallery uploads", suite.testGalleryUpload)
	t.Run("job applications", suite.testApplications)
	t.Run("contact inquiries", suite.testContact)
	t.Run("tender pagination", suite.testTenderPagination)
	t.Run("singletons", suite.testSingletons)
	t.Run("chatbot", suite.testChat)
	t.Run("logout", suite.testLogout)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(db.Options{SQLitePath: "file:e2e?mode=memory&cache=shared", LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if _, err := db.EnsureUser(gdb, "admin", "e2e-secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	var user db.User
	if err := gdb.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}

	uploadDir := t.TempDir()
	uploads := storage.New(storage.NewLocal(uploadDir, "/media"), storage.DefaultMaxSize)
	api := handler.NewAPI(gdb, handler.Options{Uploads: uploads})
	engine := router.SetupRouter(api, router.Options{
		SessionSecret: "test-session-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/media",
	})

	return &e2eSuite{
		handler:   engine,
		public:    newLocalClient(engine, false),
		admin:     newLocalClient(engine, true),
		baseURL:   "http://example.test",
		uploadDir: uploadDir,
		adminPass: "e2e-secret",
		user:      user,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/auth/login/", map[string]interface{}{
		"username": s.user.Username,
		"password": s.adminPass,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}

	me := s.mustRequest(t, s.admin, http.MethodGet, "/api/auth/me/", nil, nil)
	defer me.Body.Close()
	var body map[string]interface{}
	decodeJSON(t, me, &body)
	if body["username"] != s.user.Username {
		t.Fatalf("unexpected current user: %v", body)
	}
}

func (s *e2eSuite) testPublicEndpoints(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/health/", nil, nil)
	var health map[string]interface{}
	decodeJSON(t, resp, &health)
	if health["status"] != "healthy" || health["service"] != "bifpcl-api" {
		t.Fatalf("unexpected health body: %v", health)
	}

	for _, path := range []string{"/api/projects/", "/api/news/", "/api/notices/", "/api/gallery/", "/api/careers/", "/api/tenders/", "/api/csr/", "/api/directors/"} {
		resp := s.mustRequest(t, s.public, http.MethodGet, path, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, resp.StatusCode)
		}
		var p page
		decodeJSON(t, resp, &p)
		if p.Count != 0 || p.Results == nil {
			t.Fatalf("%s expected empty page, got %+v", path, p)
		}
	}

	resp = s.mustRequestJSON(t, s.public, http.MethodPost, "/api/projects/", map[string]interface{}{"name": "Anonymous"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("anonymous create expected 403, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/news/missing-article/", nil, nil)
	var notFound map[string]string
	decodeJSON(t, resp, &notFound)
	if resp.StatusCode != http.StatusNotFound || notFound["detail"] != "News article not found." {
		t.Fatalf("unexpected not found response %d %v", resp.StatusCode, notFound)
	}
}

func (s *e2eSuite) testNoticeLifecycle(t *testing.T) {
	payload := map[string]interface{}{"title": "Board Meeting", "published_date": "2026-01-10", "is_featured": true}

	first := s.createJSON(t, "/api/notices/", payload)
	second := s.createJSON(t, "/api/notices/", payload)
	if first["slug"] != "board-meeting" || second["slug"] != "board-meeting-1" {
		t.Fatalf("unexpected slugs %v and %v", first["slug"], second["slug"])
	}
	if first["category"] != "general" || first["category_display"] != "General" {
		t.Fatalf("unexpected category defaults: %v", first)
	}

	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/notices/board-meeting-1/", nil, nil)
	var detail map[string]interface{}
	decodeJSON(t, resp, &detail)
	if detail["id"] != second["id"] {
		t.Fatalf("slug lookup returned wrong notice: %v", detail)
	}

	id := idOf(second)
	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/notices/"+id+"/", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("read by numeric id expected 404, got %d", resp.StatusCode)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPatch, "/api/notices/"+id+"/", map[string]interface{}{"slug": "", "is_active": false})
	var patched map[string]interface{}
	decodeJSON(t, resp, &patched)
	if resp.StatusCode != http.StatusOK || patched["slug"] != "board-meeting-1" || patched["is_active"] != false {
		t.Fatalf("unexpected patch result %d %v", resp.StatusCode, patched)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/notices/board-meeting-1/", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("inactive notice expected 404 for public read, got %d", resp.StatusCode)
	}

	var p page
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/notices/", nil, nil), &p)
	if p.Count != 1 {
		t.Fatalf("expected 1 active notice, got %d", p.Count)
	}
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/notices/?all=true", nil, nil), &p)
	if p.Count != 2 {
		t.Fatalf("expected 2 notices with all flag, got %d", p.Count)
	}

	var featured []map[string]interface{}
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/notices/featured/", nil, nil), &featured)
	if len(featured) != 1 || featured[0]["slug"] != "board-meeting" {
		t.Fatalf("unexpected featured notices: %v", featured)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/api/notices/board-meeting-1/", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete by slug expected 204, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testProjectSlugs(t *testing.T) {
	project := map[string]interface{}{
		"name":        "Unit 1",
		"location":    "Rampal",
		"capacity_mw": 660,
		"technology":  "USC",
		"description": "First unit",
	}
	created := s.createJSON(t, "/api/projects/", project)
	if created["slug"] != "unit-1" || created["status"] != "operational" {
		t.Fatalf("unexpected project: %v", created)
	}

	project["slug"] = "unit-1"
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/projects/", project)
	var conflict map[string]interface{}
	decodeJSON(t, resp, &conflict)
	if resp.StatusCode != http.StatusConflict || conflict["slug"] == nil {
		t.Fatalf("duplicate slug expected 409, got %d %v", resp.StatusCode, conflict)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/projects/", map[string]interface{}{"name": "No details"})
	var invalid map[string][]string
	decodeJSON(t, resp, &invalid)
	if resp.StatusCode != http.StatusBadRequest || len(invalid["location"]) == 0 {
		t.Fatalf("missing fields expected 400, got %d %v", resp.StatusCode, invalid)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, "/api/projects/unit-1/", map[string]interface{}{
		"name":        "Unit 1 Upgraded",
		"location":    "Rampal",
		"capacity_mw": 700,
		"technology":  "USC",
		"description": "First unit",
		"status":      "construction",
	})
	var updated map[string]interface{}
	decodeJSON(t, resp, &updated)
	if resp.StatusCode != http.StatusOK || updated["slug"] != "unit-1" || updated["capacity_mw"] != float64(700) {
		t.Fatalf("unexpected update %d %v", resp.StatusCode, updated)
	}

	var p page
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/projects/?status=construction", nil, nil), &p)
	if p.Count != 1 {
		t.Fatalf("expected status filter to match, got %d", p.Count)
	}
}

func (s *e2eSuite) testGalleryUpload(t *testing.T) {
	fields := map[string]string{"title": "Boiler Hall", "category": "facility"}
	resp := s.multipart(t, s.admin, http.MethodPost, "/api/gallery/", fields, "image", "boiler.png", samplePNG(t, 6, 4))
	var created map[string]interface{}
	decodeJSON(t, resp, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("gallery create expected 201, got %d %v", resp.StatusCode, created)
	}
	if created["image_width"] != float64(6) || created["image_height"] != float64(4) {
		t.Fatalf("unexpected dimensions: %v", created)
	}
	imageURL, _ := created["image"].(string)
	if !strings.HasPrefix(imageURL, "/media/gallery/") {
		t.Fatalf("unexpected image url %q", imageURL)
	}

	served := s.mustRequest(t, s.public, http.MethodGet, imageURL, nil, nil)
	served.Body.Close()
	if served.StatusCode != http.StatusOK {
		t.Fatalf("uploaded image not served, status %d", served.StatusCode)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/gallery/", map[string]interface{}{"title": "Missing image"})
	var invalid map[string][]string
	decodeJSON(t, resp, &invalid)
	if resp.StatusCode != http.StatusBadRequest || len(invalid["image"]) == 0 {
		t.Fatalf("image item without image expected 400, got %d %v", resp.StatusCode, invalid)
	}

	video := s.createJSON(t, "/api/gallery/", map[string]interface{}{
		"title":       "Plant Tour",
		"media_type":  "video",
		"video_url":   "https://youtu.be/dQw4w9WgXcQ",
		"is_featured": true,
	})
	if embed, _ := video["embed_url"].(string); !strings.HasPrefix(embed, "https://www.youtube.com/embed/dQw4w9WgXcQ") {
		t.Fatalf("unexpected embed url: %v", video)
	}

	var p page
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/gallery/?media_type=video", nil, nil), &p)
	if p.Count != 1 {
		t.Fatalf("expected one video item, got %d", p.Count)
	}
}

func (s *e2eSuite) testApplications(t *testing.T) {
	career := s.createJSON(t, "/api/careers/", map[string]interface{}{
		"title":        "Senior Mechanical Engineer",
		"department":   "O&M",
		"location":     "Rampal",
		"description":  "Maintain boilers",
		"requirements": "B.Sc.",
		"deadline":     "2026-12-31",
	})
	careerID := idOf(career)

	fields := map[string]string{
		"career":       careerID,
		"full_name":    "Jane Doe",
		"email":        "jane@example.com",
		"phone":        "+8801700000000",
		"cover_letter": "Hello",
		"status":       "shortlisted",
	}
	resp := s.multipart(t, s.public, http.MethodPost, "/api/apply/", fields, "resume", "cv.pdf", []byte("%PDF-1.4\n%e2e\n"))
	var created map[string]interface{}
	decodeJSON(t, resp, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("apply expected 201, got %d %v", resp.StatusCode, created)
	}
	if created["status"] != "pending" || created["career_title"] != "Senior Mechanical Engineer" {
		t.Fatalf("unexpected application: %v", created)
	}

	fields["career"] = "9999"
	resp = s.multipart(t, s.public, http.MethodPost, "/api/apply/", fields, "resume", "cv.pdf", []byte("%PDF-1.4\n%e2e\n"))
	var invalid map[string][]string
	decodeJSON(t, resp, &invalid)
	if resp.StatusCode != http.StatusBadRequest || len(invalid["career"]) == 0 {
		t.Fatalf("unknown career expected 400, got %d %v", resp.StatusCode, invalid)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/applications/", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("public application list expected 403, got %d", resp.StatusCode)
	}

	var p page
	decodeJSON(t, s.mustRequest(t, s.admin, http.MethodGet, "/api/applications/?career="+careerID, nil, nil), &p)
	if p.Count != 1 {
		t.Fatalf("expected one application, got %d", p.Count)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/api/careers/"+careerID+"/", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("career delete expected 204, got %d", resp.StatusCode)
	}
	decodeJSON(t, s.mustRequest(t, s.admin, http.MethodGet, "/api/applications/", nil, nil), &p)
	if p.Count != 0 {
		t.Fatalf("expected applications to be removed with career, got %d", p.Count)
	}
}

func (s *e2eSuite) testContact(t *testing.T) {
	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/contact/", map[string]interface{}{
		"full_name":   "Rahim",
		"email":       "rahim@example.com",
		"category":    "media",
		"message":     "Interview request",
		"is_resolved": true,
	})
	var created map[string]interface{}
	decodeJSON(t, resp, &created)
	if resp.StatusCode != http.StatusCreated || created["is_resolved"] != false {
		t.Fatalf("unexpected contact response %d %v", resp.StatusCode, created)
	}

	resp = s.mustRequestJSON(t, s.public, http.MethodPost, "/api/contact/", map[string]interface{}{"full_name": "Bad", "email": "not-an-email"})
	var invalid map[string][]string
	decodeJSON(t, resp, &invalid)
	if resp.StatusCode != http.StatusBadRequest || len(invalid["email"]) == 0 {
		t.Fatalf("invalid contact expected 400, got %d %v", resp.StatusCode, invalid)
	}

	var p page
	decodeJSON(t, s.mustRequest(t, s.admin, http.MethodGet, "/api/contact-inquiries/?is_resolved=false", nil, nil), &p)
	if p.Count != 1 {
		t.Fatalf("expected one open inquiry, got %d", p.Count)
	}
}

func (s *e2eSuite) testTenderPagination(t *testing.T) {
	for i := 1; i <= 3; i++ {
		s.createJSON(t, "/api/tenders/", map[string]interface{}{
			"tender_id":        fmt.Sprintf("BIFPCL/PROC/2026/%03d", i),
			"title":            fmt.Sprintf("Tender %d", i),
			"category":         "civil",
			"description":      "Works",
			"publication_date": fmt.Sprintf("2026-01-%02d", i),
			"deadline":         "2026-03-01",
		})
	}

	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/tenders/", map[string]interface{}{
		"tender_id":        "BIFPCL/PROC/2026/001",
		"title":            "Duplicate",
		"category":         "civil",
		"description":      "Works",
		"publication_date": "2026-01-05",
		"deadline":         "2026-03-01",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate tender id expected 409, got %d", resp.StatusCode)
	}

	var first page
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/tenders/?page_size=2", nil, nil), &first)
	if first.Count != 3 || len(first.Results) != 2 || first.Previous != nil || first.Next == nil {
		t.Fatalf("unexpected first page: %+v", first)
	}
	if !strings.Contains(*first.Next, "page=2") || !strings.HasPrefix(*first.Next, "http://example.test/api/tenders/") {
		t.Fatalf("unexpected next link %q", *first.Next)
	}

	var second page
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/tenders/?page=2&page_size=2", nil, nil), &second)
	if len(second.Results) != 1 || second.Next != nil || second.Previous == nil {
		t.Fatalf("unexpected second page: %+v", second)
	}
	if strings.Contains(strings.ReplaceAll(*second.Previous, "page_size", ""), "page=") {
		t.Fatalf("previous link to first page should drop page param: %q", *second.Previous)
	}
}

func (s *e2eSuite) testSingletons(t *testing.T) {
	var company map[string]interface{}
	decodeJSON(t, s.mustRequest(t, s.public, http.MethodGet, "/api/company/", nil, nil), &company)
	if company["name"] != "BIFPCL" || company["total_capacity_mw"] != float64(1320) {
		t.Fatalf("unexpected default company: %v", company)
	}

	resp := s.mustRequestJSON(t, s.admin, http.MethodPatch, "/api/company/", map[string]interface{}{"tagline": "Energy for Growth"})
	decodeJSON(t, resp, &company)
	if resp.StatusCode != http.StatusOK || company["tagline"] != "Energy for Growth" || company["name"] != "BIFPCL" {
		t.Fatalf("unexpected company patch %d %v", resp.StatusCode, company)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPatch, "/api/settings/", map[string]interface{}{"general_email": "info@bifpcl.com"})
	var settings map[string]interface{}
	decodeJSON(t, resp, &settings)
	if resp.StatusCode != http.StatusOK || settings["general_email"] != "info@bifpcl.com" || settings["site_name"] != "BIFPCL" {
		t.Fatalf("unexpected settings patch %d %v", resp.StatusCode, settings)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPatch, "/api/settings/", map[string]interface{}{"careers_email": "nope"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid settings email expected 400, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testChat(t *testing.T) {
	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/chat/", map[string]interface{}{"message": "   "})
	var failed map[string]interface{}
	decodeJSON(t, resp, &failed)
	if resp.StatusCode != http.StatusBadRequest || failed["error"] == nil {
		t.Fatalf("empty chat expected 400, got %d %v", resp.StatusCode, failed)
	}

	resp = s.mustRequestJSON(t, s.public, http.MethodPost, "/api/chat/", map[string]interface{}{
		"message": "Are there any open tenders?",
		"history": []map[string]string{{"role": "user", "content": "hi"}},
	})
	var reply map[string]interface{}
	decodeJSON(t, resp, &reply)
	if resp.StatusCode != http.StatusOK || reply["fallback"] != true || !strings.Contains(reply["response"].(string), "/tenders") {
		t.Fatalf("unexpected chat reply %d %v", resp.StatusCode, reply)
	}
}

func (s *e2eSuite) testLogout(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodPost, "/api/auth/logout/", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout expected 204, got %d", resp.StatusCode)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/csr/", map[string]interface{}{"title": "After logout"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("write after logout expected 403, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) createJSON(t *testing.T, path string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, path, payload)
	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST %s expected 201, got %d: %v", path, resp.StatusCode, body)
	}
	return body
}

func (s *e2eSuite) multipart(t *testing.T, client httpClient, method, path string, fields map[string]string, fileField, fileName string, content []byte) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, fileName))
	partHeader.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	headers := map[string]string{"Content-Type": writer.FormDataContentType()}
	return s.mustRequest(t, client, method, path, body, headers)
}

func samplePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return s.mustRequest(t, client, method, path, bytes.NewReader(data), headers)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}

func idOf(body map[string]interface{}) string {
	id, _ := body["id"].(float64)
	return strconv.FormatUint(uint64(id), 10)
}
