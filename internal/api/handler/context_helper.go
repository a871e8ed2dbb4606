package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// codeInvalidParams request failed binding or validation
const codeInvalidParams = 10001

// MustGetParam reads a non-empty path parameter. On failure it writes a 400
// and returns false; callers return immediately.
func MustGetParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if v == "" {
		response.BadRequest(c, codeInvalidParams, name+" is required")
		return "", false
	}
	return v, true
}

// kindStatus maps a business error kind to its HTTP status
var kindStatus = map[error]int{
	pkgerrors.ErrInvalidInput:   http.StatusBadRequest,
	pkgerrors.ErrNotFound:       http.StatusNotFound,
	pkgerrors.ErrStaleReference: http.StatusUnprocessableEntity,
	pkgerrors.ErrInvalidState:   http.StatusConflict,
	pkgerrors.ErrConflict:       http.StatusConflict,
}

// failByKind answers errors no module switch recognised. Errors carrying a
// kind keep their message; anything else is a 500 with a generic message.
func failByKind(c *gin.Context, code int, err error) {
	for kind, status := range kindStatus {
		if errors.Is(err, kind) {
			response.Fail(c, status, code, kind.Error(), err.Error())
			return
		}
	}
	if errors.Is(err, pkgerrors.ErrOptimisticLock) {
		response.Conflict(c, code, err.Error())
		return
	}
	_ = c.Error(err)
	response.InternalError(c)
}
