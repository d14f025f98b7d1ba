package middleware

import (
	"net/http"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const SessionContextKey = "session"

// Sessions binds the session manager to the request: it resolves the cookie to
// a session before the handler runs and reissues the cookie whenever the
// session id changes.
type Sessions struct {
	manager    *service.SessionManager
	codec      *service.SessionTokenCodec
	cookieName string
	secure     bool
	log        *logrus.Logger
}

func NewSessions(manager *service.SessionManager, codec *service.SessionTokenCodec, cookieName string, secure bool, log *logrus.Logger) *Sessions {
	return &Sessions{
		manager:    manager,
		codec:      codec,
		cookieName: cookieName,
		secure:     secure,
		log:        log,
	}
}

// Load starts or resumes the caller's session. Tampered or expired cookies
// are treated as absent.
func (s *Sessions) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		var id string
		if raw, err := c.Cookie(s.cookieName); err == nil && raw != "" {
			id, err = s.codec.Decode(raw)
			if err != nil {
				s.log.WithError(err).Debug("ignoring session cookie")
				id = ""
			}
		}

		session, err := s.manager.Start(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if session.ID != id {
			if err := s.Replace(c, session); err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
		} else {
			c.Set(SessionContextKey, session)
		}

		c.Next()
	}
}

// Replace makes session the request's current session and sends its cookie.
// It must run before the response body is written.
func (s *Sessions) Replace(c *gin.Context, session *domain.Session) error {
	token, err := s.codec.Encode(session)
	if err != nil {
		return err
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, token, maxAge, "/", "", s.secure, true)
	c.Set(SessionContextKey, session)
	return nil
}

// GetSession returns the session loaded for this request
func GetSession(c *gin.Context) *domain.Session {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}
