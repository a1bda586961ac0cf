package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ummahdev/core/board/flags"
	"github.com/ummahdev/core/core/events"
	"github.com/ummahdev/core/core/user"
	"github.com/ummahdev/core/deps"
	"github.com/ummahdev/core/modules/acl"
)

// FlagsAPI serves flag filing and the moderation queue.
type FlagsAPI struct {
	Deps *deps.Deps `inject:""`
}

type fileFlagForm struct {
	ContentID   string `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required,oneof=question answer comment"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

type reviewForm struct {
	Note string `json:"note" binding:"max=500"`
}

// NewFlag endpoint.
func (api FlagsAPI) NewFlag(c *gin.Context) {
	var form fileFlagForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindErr(c, http.StatusBadRequest, "Invalid flag request, check parameters", err)
		return
	}
	if _, err := user.Authorize(api.Deps, caller(c), acl.FileFlags); err != nil {
		fail(c, err)
		return
	}
	flag, err := flags.File(api.Deps, flags.Report{
		ContentID:   form.ContentID,
		ContentType: form.ContentType,
		Reason:      form.Reason,
		Description: form.Description,
		ReporterID:  caller(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	events.In <- events.FlagNew(flag.ID, flag.ReporterID, string(flag.Reason))
	c.JSON(200, gin.H{"flag": flag, "status": "okay"})
}

type reasonView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// FlagReasons endpoint.
func (api FlagsAPI) FlagReasons(c *gin.Context) {
	rules := api.Deps.Rules()
	reasons := make([]reasonView, 0, len(flags.Reasons))
	for _, r := range flags.Reasons {
		def := rules.Flags.Reasons[string(r)]
		reasons = append(reasons, reasonView{Key: string(r), Label: def.Label, Description: def.Description})
	}
	c.JSON(200, gin.H{"status": "okay", "reasons": reasons})
}

// Flags lists the moderation queue.
func (api FlagsAPI) Flags(c *gin.Context) {
	if _, err := user.Authorize(api.Deps, caller(c), acl.ListFlags); err != nil {
		fail(c, err)
		return
	}
	page, err := flags.List(api.Deps, c.Query("status"), c.Query("cursor"), limitParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "okay", "list": page.Items, "next": page.Next})
}

func (api FlagsAPI) Counts(c *gin.Context) {
	if _, err := user.Authorize(api.Deps, caller(c), acl.ListFlags); err != nil {
		fail(c, err)
		return
	}
	counts, err := flags.Counts(api.Deps)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "okay", "counts": counts})
}

// Flag detail request.
func (api FlagsAPI) Flag(c *gin.Context) {
	if _, err := user.Authorize(api.Deps, caller(c), acl.ListFlags); err != nil {
		fail(c, err)
		return
	}
	f, err := flags.FindId(api.Deps, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay", "flag": f})
}

func (api FlagsAPI) Approve(c *gin.Context) {
	api.review(c, func(id, reviewerID, note string) (flags.Flag, error) {
		return flags.Approve(api.Deps, id, reviewerID, note)
	})
}

func (api FlagsAPI) Reject(c *gin.Context) {
	api.review(c, func(id, reviewerID, note string) (flags.Flag, error) {
		return flags.Reject(api.Deps, id, reviewerID, note)
	})
}

type reviewFn func(id, reviewerID, note string) (flags.Flag, error)

func (api FlagsAPI) review(c *gin.Context, fn reviewFn) {
	var form reviewForm
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			jsonBindErr(c, http.StatusBadRequest, "Invalid review request, check parameters", err)
			return
		}
	}
	flag, err := fn(c.Param("id"), caller(c), form.Note)
	if err != nil {
		fail(c, err)
		return
	}

	events.In <- events.FlagReviewed(flag.ID, string(flag.Status), events.UserSign{UserID: caller(c), Reason: flag.ReviewNote})
	c.JSON(200, gin.H{"status": "okay", "flag": flag})
}

// Resolve endpoint deletes the flag.
func (api FlagsAPI) Resolve(c *gin.Context) {
	id := c.Param("id")
	if err := flags.Resolve(api.Deps, id, caller(c)); err != nil {
		fail(c, err)
		return
	}

	events.In <- events.FlagResolved(id, caller(c))
	c.JSON(200, gin.H{"status": "okay"})
}
