// Package session tracks the authenticated username for a browser
// session and carries one-shot flash messages between redirects.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

// Flash is a one-shot message displayed on the next rendered page.
// Category matches the alert style of the templates ("success",
// "danger").
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// SetLoginUser records username as the current identity.
func SetLoginUser(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(loginUser, username)
	return s.Save()
}

// SetMaxAge sets the session cookie lifetime in seconds.
func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// GetLoginUser returns the current identity, empty when nobody is
// logged in.
func GetLoginUser(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if username, ok := obj.(string); ok {
			return username
		}
	}
	return ""
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != ""
}

// ClearSession drops the identity and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) error {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	return s.Save()
}

// TakeFlashes returns and consumes all queued flash messages.
func TakeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Flashes are consumed on read; persist the removal.
	_ = s.Save()
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
