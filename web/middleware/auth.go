package middleware

import (
	"net/http"

	"userpanel/web/session"

	"github.com/gin-gonic/gin"
)

// RequireLogin redirects unauthenticated requests to the login page with a
// warning flash. Any authenticated session passes; there is no role check.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLogin(c) {
			session.Flash(c, "warning", "You must be logged in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
