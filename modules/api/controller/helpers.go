package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/op/go-logging"
	"github.com/ummahdev/core/board/flags"
	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/directory"
	"github.com/ummahdev/core/core/user"
)

var log = logging.MustGetLogger("api")

func jsonErr(c *gin.Context, status int, message string) {
	// This specific json error structure is handled
	// by the frontend in a generic way so errors
	// can be shown to the user and also translated.
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

type fieldErr struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func jsonBindErr(c *gin.Context, status int, message string, bindErr error) {
	var verrs validator.ValidationErrors
	if !errors.As(bindErr, &verrs) {
		// Malformed JSON and type mismatches carry no field details.
		jsonErr(c, status, message)
		return
	}
	details := make([]fieldErr, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldErr{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
		"details": details,
	})
}

// fail translates domain errors into the json error envelope.
func fail(c *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		jsonErr(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrPermissionDenied), errors.Is(err, common.ErrSelfAction):
		jsonErr(c, http.StatusForbidden, err.Error())
	case errors.As(err, &verr):
		jsonErr(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, flags.ErrFlagNotFound), errors.Is(err, user.UserNotFound), errors.Is(err, directory.ErrNotFound):
		jsonErr(c, http.StatusNotFound, err.Error())
	case errors.Is(err, flags.ErrQuotaExceeded):
		jsonErr(c, http.StatusPreconditionFailed, err.Error())
	case common.IsLookupFailed(err):
		log.Errorf("request %s: store unavailable: %v", c.GetString("request_id"), err)
		jsonErr(c, http.StatusInternalServerError, "store unavailable, try again")
	default:
		log.Errorf("request %s failed: %v", c.GetString("request_id"), err)
		jsonErr(c, http.StatusInternalServerError, "internal error")
	}
}

// caller id set by the authorization middleware; empty when anonymous.
func caller(c *gin.Context) string {
	return c.GetString("user_id")
}

func limitParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}
