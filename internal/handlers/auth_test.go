package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLogoutClearsCookieWithConfiguredDomain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev := CookieDomain
	CookieDomain = "mindsender.app"
	t.Cleanup(func() { CookieDomain = prev })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	LogoutUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "token=")
	assert.Contains(t, cookie, "Domain=mindsender.app")
	assert.Contains(t, cookie, "Max-Age=0")
}

func TestLogoutCookieIsHostOnlyWithoutDomain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev := CookieDomain
	CookieDomain = ""
	t.Cleanup(func() { CookieDomain = prev })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	LogoutUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Header().Get("Set-Cookie"), "Domain=")
}
