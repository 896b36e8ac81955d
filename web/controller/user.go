package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"userpanel/logger"
	"userpanel/web/middleware"
	"userpanel/web/service"
	"userpanel/web/session"

	"github.com/gin-gonic/gin"
)

// EditUserForm carries the fields posted by the edit page.
type EditUserForm struct {
	Username string `form:"username"`
	Role     string `form:"role"`
}

// UserController handles the edit and delete routes. Both require a login but
// nothing more: any authenticated session may edit or delete any account.
type UserController struct {
	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/")
	g.Use(middleware.RequireLogin())

	g.GET("/edit_user/:id", a.editUserPage)
	g.POST("/edit_user/:id", a.editUser)
	g.GET("/delete_user/:id", a.deleteUser)
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (a *UserController) editUserPage(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	user, err := a.userService.GetUser(id)
	if err != nil {
		session.Flash(c, "danger", "User not found.")
		redirect(c, "/")
		return
	}
	html(c, "edit_user.html", gin.H{"user": user})
}

// editUser renames and re-roles the target. A username already held by a
// different account bounces back to the form; renaming to the current value
// goes through.
func (a *UserController) editUser(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	if _, err := a.userService.GetUser(id); err != nil {
		session.Flash(c, "danger", "User not found.")
		redirect(c, "/")
		return
	}

	var form EditUserForm
	if err := c.ShouldBind(&form); err != nil {
		session.Flash(c, "danger", "Invalid form data")
		redirect(c, fmt.Sprintf("/edit_user/%d", id))
		return
	}

	err := a.userService.UpdateUser(id, form.Username, form.Role)
	if err == service.ErrUsernameTaken {
		session.Flash(c, "danger", "Username already taken, please choose another one.")
		redirect(c, fmt.Sprintf("/edit_user/%d", id))
		return
	}
	if err != nil {
		logger.Warning("update user err:", err)
		session.Flash(c, "danger", "Could not update user.")
		redirect(c, fmt.Sprintf("/edit_user/%d", id))
		return
	}

	session.Flash(c, "success", "User updated successfully!")
	redirect(c, "/")
}

// deleteUser removes the account unconditionally. A nonexistent id is a
// silent no-op and still reports success.
func (a *UserController) deleteUser(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	if err := a.userService.DeleteUser(id); err != nil {
		logger.Warning("delete user err:", err)
		session.Flash(c, "danger", "Could not delete user.")
		redirect(c, "/")
		return
	}

	session.Flash(c, "success", fmt.Sprintf("User with ID %d deleted successfully.", id))
	redirect(c, "/")
}
