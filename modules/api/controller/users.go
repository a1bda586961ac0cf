package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ummahdev/core/core/events"
	"github.com/ummahdev/core/core/user"
	"github.com/ummahdev/core/deps"
	"github.com/ummahdev/core/modules/acl"
)

// UsersAPI serves user management for moderators and admins.
type UsersAPI struct {
	Deps *deps.Deps `inject:""`
}

type changeRoleForm struct {
	Role string `json:"role" binding:"required"`
}

type banForm struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// Users paginated fetch.
func (api UsersAPI) Users(c *gin.Context) {
	if _, err := user.Authorize(api.Deps, caller(c), acl.ListUsers); err != nil {
		fail(c, err)
		return
	}
	page, err := user.List(api.Deps, c.Query("cursor"), limitParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "okay", "list": page.Items, "next": page.Next})
}

func (api UsersAPI) ChangeRole(c *gin.Context) {
	var form changeRoleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindErr(c, http.StatusBadRequest, "Invalid role request, check parameters", err)
		return
	}
	usr, err := user.ChangeRole(api.Deps, caller(c), c.Param("id"), form.Role)
	if err != nil {
		fail(c, err)
		return
	}

	events.In <- events.UserRoleChanged(usr.ID, usr.RoleName, caller(c))
	c.JSON(200, gin.H{"status": "okay", "user": usr})
}

// Ban endpoint.
func (api UsersAPI) Ban(c *gin.Context) {
	var form banForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindErr(c, http.StatusBadRequest, "Invalid ban request, check parameters", err)
		return
	}
	usr, err := user.Ban(api.Deps, caller(c), c.Param("id"), form.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	events.In <- events.UserBanned(usr.ID, events.UserSign{UserID: caller(c), Reason: usr.BanReason})
	c.JSON(200, gin.H{"status": "okay", "user": usr})
}

func (api UsersAPI) Unban(c *gin.Context) {
	usr, err := user.Unban(api.Deps, caller(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	events.In <- events.UserUnbanned(usr.ID, caller(c))
	c.JSON(200, gin.H{"status": "okay", "user": usr})
}
