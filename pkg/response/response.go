package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Code      string      `json:"code,omitempty"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope and aborts the chain.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}

const genericMessage = "internal server error"

var statusByCode = map[apperror.Code]int{
	apperror.CodeValidation:          http.StatusBadRequest,
	apperror.CodeDomainNotAllowed:    http.StatusForbidden,
	apperror.CodeForbidden:           http.StatusForbidden,
	apperror.CodeAlreadyRegistered:   http.StatusConflict,
	apperror.CodeConflict:            http.StatusConflict,
	apperror.CodeIllegalState:        http.StatusConflict,
	apperror.CodeInvalidCredentials:  http.StatusUnauthorized,
	apperror.CodeInvalidRefreshToken: http.StatusUnauthorized,
	apperror.CodeUserNotFound:        http.StatusNotFound,
	apperror.CodeNotFound:            http.StatusNotFound,
	apperror.CodePasswordReset:       http.StatusBadGateway,
	apperror.CodeProvider:            http.StatusBadGateway,
}

// StatusOf maps an error's code to an HTTP status; unknown errors are 500.
func StatusOf(err error) int {
	if s, ok := statusByCode[apperror.CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// FromError writes the envelope for err. Server-side failures are logged with
// their cause and answered with a message that does not leak it.
func FromError(ctx *gin.Context, logger *logrus.Logger, err error) {
	status := StatusOf(err)
	code := apperror.CodeOf(err)
	msg := apperror.MessageOf(err)

	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"code":       code,
				"request_id": ctx.GetString("request_id"),
				"path":       ctx.FullPath(),
			}).Error("request failed")
		}
	}
	if status == http.StatusInternalServerError || msg == "" {
		msg = genericMessage
	}

	resp := APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   msg,
		Code:      string(code),
	}
	ctx.AbortWithStatusJSON(status, resp)
}
