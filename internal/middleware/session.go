package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the signed visitor token.
const SessionCookieName = "restaurant.sid"

const visitorIDKey = "visitorId"

// VisitorSession resolves the anonymous visitor id from a signed cookie,
// issuing a fresh id and cookie when none is present or the token is
// invalid. Downstream handlers only ever see the resolved id string.
func VisitorSession(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookieName); err == nil {
			if id, err := parseVisitorToken(raw, secret); err == nil {
				c.Set(visitorIDKey, id)
				c.Next()
				return
			}
			log.Println("[SESSION] [WARN] invalid visitor token, issuing a new one")
		}

		id := uuid.NewString()
		token, err := signVisitorToken(id, secret, ttl)
		if err != nil {
			log.Println("[SESSION] [ERROR] signing visitor token failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)
		c.Set(visitorIDKey, id)
		c.Next()
	}
}

// VisitorID returns the resolved visitor id for the request.
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}

func signVisitorToken(visitorID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseVisitorToken(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return "", errors.New("missing subject")
	}
	return sub, nil
}
