// Package response provides uniform HTTP response handling
package response

import (
	"net/http"

	"lipapay/pkg/logger"

	"github.com/gin-gonic/gin"
)

// predefined response statuses
const (
	Success = "success"
	Error   = "error"
)

/* Standard response shape
{
    "status": "success",
    "data": {},     // payload on success
    "error": "",    // machine detail on failure
    "message": "",  // human readable hint
}
*/

// Response uniform response body
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ------------------ success responses ------------------

// Data responds 200 with a data payload
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: Success,
		Data:   data,
	})
}

// JSON responds 200 with a raw JSON body, used by provider callback acks
// whose shape the provider dictates
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created responds 201 with a data payload
func Created(c *gin.Context, data interface{}, msg ...string) {
	message := "created"
	if len(msg) > 0 {
		message = msg[0]
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

//  ------------------ error responses ------------------

// Abort400 responds 400
func Abort400(c *gin.Context, msg ...string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status:  Error,
		Message: getMsg("bad request", msg...),
	})
}

// Abort401 responds 401
func Abort401(c *gin.Context, msg ...string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
		Status:  Error,
		Message: getMsg("unauthenticated", msg...),
	})
}

// Abort404 responds 404
func Abort404(c *gin.Context, msg ...string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Response{
		Status:  Error,
		Message: getMsg("resource not found", msg...),
	})
}

// Abort500 responds 500
func Abort500(c *gin.Context, msg ...string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Status:  Error,
		Message: getMsg("internal server error", msg...),
	})
}

// BadRequest responds 400 carrying the error detail
func BadRequest(c *gin.Context, err error, msg ...string) {
	logger.LogIf(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status:  Error,
		Message: getMsg("malformed request", msg...),
		Error:   err.Error(),
	})
}

// ServerError responds 500 carrying the error detail
func ServerError(c *gin.Context, err error, msg ...string) {
	logger.LogIf(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Status:  Error,
		Message: getMsg("internal server error", msg...),
		Error:   err.Error(),
	})
}

// ValidationError responds 422 with the per-field validation errors
func ValidationError(c *gin.Context, errors map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Response{
		Status:  Error,
		Message: "validation failed",
		Data:    errors,
	})
}

// getMsg picks the override message when given
func getMsg(defaultMsg string, msg ...string) string {
	if len(msg) > 0 {
		return msg[0]
	}
	return defaultMsg
}
