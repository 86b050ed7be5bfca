package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/types"
)

// ErrorDetail is an alias for types.ErrorDetail
type ErrorDetail = types.ErrorDetail

// ErrorResponse is an alias for types.ErrorResponse
type ErrorResponse = types.ErrorResponse

// SuccessResponse is a type alias for types.SuccessResponse[interface{}]
type SuccessResponse = types.SuccessResponse[interface{}]

// Success sends a success response
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, types.SuccessResponse[interface{}]{
		StatusCode: statusCode,
		IsSuccess:  true,
		Data:       data,
	})
}

// OK sends a 200 OK response
func OK(c *gin.Context, data interface{}) {
	Success(c, http.StatusOK, data)
}

// Error sends an error response with the stable code carried by the
// AppError; anything else is surfaced generically as SERVER_ERROR.
func Error(c *gin.Context, statusCode int, err error) {
	code := errors.CodeServerError
	message := "Internal server error"
	if appErr, ok := err.(*errors.AppError); ok {
		code = appErr.Code
		message = appErr.Message
	}

	c.JSON(statusCode, types.ErrorResponse{
		StatusCode: statusCode,
		IsSuccess:  false,
		Error: types.ErrorDetail{
			Timestamp:    time.Now().Format(time.RFC3339),
			Path:         c.Request.URL.Path,
			ErrorCode:    code,
			ErrorMessage: message,
		},
	})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, err)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, err)
}

// HandleAppError maps an AppError to its HTTP status and sends it.
func HandleAppError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		Error(c, errors.HTTPStatusFromCode(appErr.Code), appErr)
		return
	}
	InternalError(c, err)
}
