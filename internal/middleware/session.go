package middleware

import (
	"ap_quiz_backend/internal/service"
	"ap_quiz_backend/internal/util"
	"ap_quiz_backend/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware 从 cookie 中读取会话，缺失、被篡改或过期时签发新会话
func SessionMiddleware(sessions *service.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)

		sessionID, err := sessions.Resolve(token)
		if err != nil {
			if token != "" {
				logger.Log.Debug("Session token rejected, issuing a new one", zap.Error(err))
			}

			issued, err := sessions.Issue()
			if err != nil {
				logger.Log.Error("Failed to issue session", zap.Error(err))
				c.String(http.StatusInternalServerError, "Error: "+err.Error())
				c.Abort()
				return
			}

			setSessionCookie(c, cookieName, issued)
			sessionID = issued.ID
			c.Set(contextSessionIssuedKey, true)
		}

		c.Set(util.ContextSessionKey, sessionID)
		c.Next()
	}
}

// RenewSession 为当前会话重新签发 cookie，用于会顺延会话过期时间的路由
func RenewSession(sessions *service.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(contextSessionIssuedKey) {
			c.Next()
			return
		}

		issued, err := sessions.Renew(util.GetSessionIDFromContext(c))
		if err != nil {
			logger.Log.Error("Failed to renew session", zap.Error(err))
			c.String(http.StatusInternalServerError, "Error: "+err.Error())
			c.Abort()
			return
		}

		setSessionCookie(c, cookieName, issued)
		c.Next()
	}
}

const contextSessionIssuedKey = "sessionIssued"

func setSessionCookie(c *gin.Context, cookieName string, issued *service.IssuedSession) {
	maxAge := int(time.Until(issued.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, issued.Token, maxAge, "/", "", false, true)
}
