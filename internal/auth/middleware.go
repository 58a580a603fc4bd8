package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CookieName  = "ludo_session"
	TokenHeader = "X-Session-Token"

	sessionKey = "sessionID"
)

// SessionMiddleware resolves the caller's session from a bearer token, the
// session cookie or the token query parameter. Callers without a valid
// token get a new session, returned in the X-Session-Token header and the
// cookie.
func (s *Sessions) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := tokenFrom(c); tok != "" {
			if sid, err := s.Parse(tok); err == nil {
				c.Set(sessionKey, sid)
				c.Next()
				return
			}
		}

		sid, tok, err := s.New()
		if err != nil {
			log.Printf("issue session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
			return
		}
		c.Header(TokenHeader, tok)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, tok, int(s.ttl.Seconds()), "/", "", false, true)
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.Split(h, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if tok, err := c.Cookie(CookieName); err == nil && tok != "" {
		return tok
	}
	return c.Query("token")
}
