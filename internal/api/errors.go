package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the response envelope.
const (
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeInvalidCredentials  = "ERR_INVALID_CREDENTIALS"
	ErrCodeInvalidRefreshToken = "ERR_INVALID_REFRESH_TOKEN"
	ErrCodeSessionExpired      = "ERR_SESSION_EXPIRED"
	ErrCodeUnauthorized        = "ERR_UNAUTHORIZED"
	ErrCodeForbidden           = "ERR_FORBIDDEN"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeInvalidTranslations = "ERR_INVALID_TRANSLATIONS"
	ErrCodeInvalidLanguage     = "ERR_INVALID_LANGUAGE"
	ErrCodeUploadFailed        = "ERR_UPLOAD_FAILED"
	ErrCodeInternal            = "ERR_INTERNAL"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type errorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// RespondOK writes a success envelope with the given payload.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, successEnvelope{Success: true, Data: data})
}

// RespondCreated writes a success envelope with a 201 status.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successEnvelope{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, successEnvelope{Success: true, Message: message})
}

// RespondError writes an error envelope.
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorEnvelope{Success: false, Error: APIError{Code: code, Message: message}})
}

// RespondErrorDetails writes an error envelope with extra context, typically
// field-level validation information.
func RespondErrorDetails(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, errorEnvelope{Success: false, Error: APIError{Code: code, Message: message, Details: details}})
}

// AbortError writes an error envelope and aborts the handler chain. Used by
// middleware.
func AbortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Success: false, Error: APIError{Code: code, Message: message}})
}
