package middleware

import (
	"errors"
	"net/http"

	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/auth/login"

// ErrorHandlerMiddleware handles panics and turns errors attached with c.Error
// into an ErrorResponse.
func ErrorHandlerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"panic":  r,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Error("recovered from panic")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:   "Internal Server Error",
					Message: service.ErrPersistence.Message,
					Code:    http.StatusInternalServerError,
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		code, message := StatusFor(err)
		if code == http.StatusInternalServerError {
			var svcErr *service.ServiceError
			if !errors.As(err, &svcErr) {
				log.WithError(err).Error("unhandled request error")
			}
		}
		if errors.Is(err, service.ErrAuthenticationRequired) {
			c.Header("Location", LoginPath)
		}

		c.JSON(code, dto.ErrorResponse{
			Error:   http.StatusText(code),
			Message: message,
			Code:    code,
		})
	}
}

// StatusFor maps an error to the HTTP status and the message shown to the caller.
func StatusFor(err error) (int, string) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError, service.ErrPersistence.Message
	}

	switch svcErr.Kind {
	case service.KindValidation:
		return http.StatusBadRequest, svcErr.Message
	case service.KindDuplicateUsername:
		return http.StatusConflict, svcErr.Message
	case service.KindAuthenticationFailure, service.KindAuthenticationRequired:
		return http.StatusUnauthorized, svcErr.Message
	case service.KindCSRFValidation:
		return http.StatusForbidden, svcErr.Message
	case service.KindNotFound:
		return http.StatusNotFound, svcErr.Message
	default:
		return http.StatusInternalServerError, service.ErrPersistence.Message
	}
}
