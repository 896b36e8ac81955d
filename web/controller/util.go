package controller

import (
	"net"
	"net/http"
	"strings"

	"userpanel/config"
	"userpanel/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real client IP from proxy headers or the remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template, draining queued flash messages into the page.
func html(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = session.TakeFlashes(c)
	data["cur_ver"] = config.GetVersion()
	c.HTML(http.StatusOK, name, data)
}

// redirect issues a 302 so that form POSTs land on the target as GETs.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
