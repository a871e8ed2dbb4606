package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── errors ──

// Error writes an error envelope without a kind
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// Fail writes an error envelope carrying the business error kind
func Fail(c *gin.Context, httpStatus int, code int, kind, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Kind:    kind,
	})
}

// ErrorWithDetails error envelope with extra detail text
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Kind:    "invalid_input",
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Fail(c, http.StatusBadRequest, code, "invalid_input", message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Fail(c, http.StatusNotFound, code, "not_found", message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, 50000, "internal", "internal server error")
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Fail(c, http.StatusConflict, code, "conflict", message)
}

// InvalidState 409, the target is not in a state that allows the request
func InvalidState(c *gin.Context, code int, message string) {
	Fail(c, http.StatusConflict, code, "invalid_state", message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, code int, message string) {
	Error(c, http.StatusTooManyRequests, code, message)
}
