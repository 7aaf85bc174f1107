// Package controller provides the HTTP handlers of the feedback board:
// registration, login, profile pages and feedback CRUD.
package controller

import (
	"net/http"

	"github.com/feedbackboard/feedbackboard/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication guard shared by all
// controllers.
type BaseController struct{}

// checkLogin is a middleware that rejects requests carrying no session
// identity. Presence is always checked before any ownership check in
// the handlers behind it.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		session.AddFlash(c, "danger", "Please login first!")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

// denyNotOwner flashes the permission message and redirects to login.
// Used when the session identity does not match a resource owner.
func denyNotOwner(c *gin.Context) {
	session.AddFlash(c, "danger", "You do not have permission to do that!")
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
