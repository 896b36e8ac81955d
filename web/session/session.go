// Package session wraps the signed-cookie session: the logged-in username and
// one-shot flash messages.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserKey = "LOGIN_USER"
	flashesKey   = "FLASHES"
)

// FlashMessage is a transient notice rendered once on the next page.
// Category is one of success, danger, warning, info.
type FlashMessage struct {
	Category string
	Message  string
}

func init() {
	gob.Register(FlashMessage{})
	gob.Register([]FlashMessage{})
}

// SetLoginUser stores the authenticated username in the session cookie.
func SetLoginUser(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, username)
	return s.Save()
}

// GetLoginUser returns the session username, or "" when not logged in.
func GetLoginUser(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if username, ok := obj.(string); ok {
			return username
		}
	}
	return ""
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != ""
}

// ClearSession drops the login claim. The cookie itself survives so that a
// flash queued after logout still reaches the next page.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUserKey)
	return s.Save()
}

// Flash queues a one-shot message for the next rendered page.
func Flash(c *gin.Context, category string, message string) error {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashesKey).([]FlashMessage)
	flashes = append(flashes, FlashMessage{Category: category, Message: message})
	s.Set(flashesKey, flashes)
	return s.Save()
}

// TakeFlashes returns the queued messages and removes them from the session.
func TakeFlashes(c *gin.Context) []FlashMessage {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashesKey).([]FlashMessage)
	if len(flashes) == 0 {
		return nil
	}
	s.Delete(flashesKey)
	if err := s.Save(); err != nil {
		return flashes
	}
	return flashes
}
