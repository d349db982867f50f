package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError defines standard error response
// Example: { "error": { "code": "validation_failed", "message": "...", "fields": ["mesmoId"] } }
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Detail  string   `json:"detail,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

func Conflict(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusConflict, "conflict", msg)
}

// Unprocessable reports the flagged form fields.
func Unprocessable(ctx *gin.Context, msg string, fields []string) {
	ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: APIError{
		Code:    "validation_failed",
		Message: msg,
		Fields:  fields,
	}})
}

// BadGateway hides backend failures behind the generic message.
func BadGateway(ctx *gin.Context, msg, detail string) {
	ctx.JSON(http.StatusBadGateway, errorResponse{Error: APIError{
		Code:    "backend_unavailable",
		Message: msg,
		Detail:  detail,
	}})
}
