// Package controller holds the HTTP request handlers: one per route, each a
// session check, one or more queries, then a render or a flash-and-redirect.
package controller

import (
	"html/template"

	"userpanel/logger"
	"userpanel/web/service"
	"userpanel/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm carries the credentials posted by the login page.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// RegisterForm carries the fields posted by the registration page. Role is
// optional and stored verbatim.
type RegisterForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

// IndexController handles the home, login, register and logout routes.
type IndexController struct {
	userService service.UserService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.home)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/logout", a.logout)
}

// home lists every account together with the current user's role. A session
// whose username no longer resolves (deleted concurrently) is sent back to
// the login page.
func (a *IndexController) home(c *gin.Context) {
	username := session.GetLoginUser(c)
	if username == "" {
		redirect(c, "/login")
		return
	}

	user, err := a.userService.GetUserByUsername(username)
	if err != nil {
		session.Flash(c, "danger", "User not found!")
		redirect(c, "/login")
		return
	}

	users, err := a.userService.ListUsers()
	if err != nil {
		logger.Warning("list users err:", err)
		session.Flash(c, "danger", "Could not load users.")
		redirect(c, "/login")
		return
	}

	html(c, "home.html", gin.H{
		"username": username,
		"role":     user.Role,
		"users":    users,
	})
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", nil)
}

// login verifies the credentials and establishes the session. Failures get a
// generic message that does not reveal which field was wrong.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		session.Flash(c, "danger", "Invalid username or password")
		html(c, "login.html", nil)
		return
	}

	user := a.userService.Authenticate(form.Username, form.Password)
	if user == nil {
		safeUser := template.HTMLEscapeString(form.Username)
		logger.Warningf("failed login for %q from %s", safeUser, getRemoteIp(c))
		session.Flash(c, "danger", "Invalid username or password")
		html(c, "login.html", nil)
		return
	}

	if err := session.SetLoginUser(c, user.Username); err != nil {
		logger.Warning("unable to save session:", err)
	}
	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))
	session.Flash(c, "success", "Login successful!")
	redirect(c, "/")
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", nil)
}

// register creates the account and routes the visitor on: back to the
// referring page on a duplicate username, home when already logged in,
// otherwise to the login page.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		session.Flash(c, "danger", "Invalid form data")
		redirect(c, "/register")
		return
	}

	_, err := a.userService.Register(form.Username, form.Password, form.Role)
	if err == service.ErrUsernameTaken {
		session.Flash(c, "danger", "Username already exists.")
		ref := c.GetHeader("Referer")
		if ref == "" {
			ref = "/register"
		}
		redirect(c, ref)
		return
	}
	if err != nil {
		logger.Warning("register err:", err)
		session.Flash(c, "danger", "Registration failed.")
		redirect(c, "/register")
		return
	}

	session.Flash(c, "success", "User registered successfully.")
	if session.IsLogin(c) {
		redirect(c, "/")
	} else {
		redirect(c, "/login")
	}
}

func (a *IndexController) logout(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		logger.Infof("%s logged out", username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	session.Flash(c, "info", "You have been logged out.")
	redirect(c, "/login")
}
