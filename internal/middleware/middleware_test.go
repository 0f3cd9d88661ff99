package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newTestEngine(log *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	if log != nil {
		r.Use(RequestLogger(log))
	}
	return r
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := newTestEngine(log)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	cases := map[string]string{"/ok": "info", "/missing": "warning", "/boom": "error"}
	for path, level := range cases {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("%s: decode log entry: %v (%s)", path, err, buf.String())
		}
		if entry["level"] != level {
			t.Fatalf("%s: expected level %s, got %v", path, level, entry["level"])
		}
		if entry["request_id"] == "" || entry["request_id"] != w.Header().Get(RequestIDHeader) {
			t.Fatalf("%s: request id not propagated: %v", path, entry["request_id"])
		}
	}
}

func TestReadOnlyUnlessAdmin(t *testing.T) {
	r := newTestEngine(nil)
	r.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionUserIDKey, uint(1))
		_ = session.Save()
		c.Status(http.StatusOK)
	})
	guarded := r.Group("/", ReadOnlyUnlessAdmin())
	guarded.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
	guarded.POST("/items", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected anonymous read to pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected anonymous write to be rejected, got %d", w.Code)
	}

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login", nil))
	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	for _, cookie := range login.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected admin write to pass, got %d", w.Code)
	}
}
