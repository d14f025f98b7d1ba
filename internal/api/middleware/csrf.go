package middleware

import (
	"net/http"

	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	CSRFHeader    = "X-CSRF-Token"
	CSRFFormField = "csrf_token"
)

// CSRFMiddleware checks the session's CSRF token on every state-changing
// request. The token is read from the X-CSRF-Token header, falling back to
// the csrf_token form field.
func CSRFMiddleware(manager *service.SessionManager, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFHeader)
		if submitted == "" {
			submitted = c.PostForm(CSRFFormField)
		}

		if !manager.ValidateCSRFToken(GetSession(c), submitted) {
			log.WithFields(logrus.Fields{
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			}).Warn("csrf token rejected")

			_ = c.Error(service.ErrCSRFValidation)
			c.Abort()
			return
		}

		c.Next()
	}
}
