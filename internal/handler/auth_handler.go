package handler

import (
	"errors"
	"net/http"

	"github.com/bifpcl/internal/middleware"
	"github.com/bifpcl/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login 校验管理员账号并建立会话。
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindPayload(c, &payload) {
		return
	}

	user, err := a.auth.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password."})
			return
		}
		respondServiceError(c, err)
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set(middleware.SessionUserIDKey, user.ID)
	session.Set(middleware.SessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// Logout 清除会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CurrentUser returns the signed-in admin.
func (a *API) CurrentUser(c *gin.Context) {
	session := sessions.Default(c)
	id, ok := session.Get(middleware.SessionUserIDKey).(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	user, err := a.auth.Find(id)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			session.Clear()
			_ = session.Save()
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}
