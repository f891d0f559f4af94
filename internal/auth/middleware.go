package auth

import (
	"fmt"
	"strings"

	"mygamelist/backend/internal/config"
	"mygamelist/backend/internal/session"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

// SessionMiddleware restores a session for each request. A valid Bearer token
// yields an authenticated session; anything else leaves it anonymous. It never
// rejects the request itself, handlers decide what an anonymous caller may do.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.New()
		sess.Begin()

		if userID, ok := userIDFromToken(c.GetHeader("Authorization")); ok {
			sess.Login(userID)
		} else {
			sess.Clear()
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session restored for this request. The zero
// anonymous session is returned when the middleware did not run.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	sess := session.New()
	sess.Begin()
	sess.Clear()
	return sess
}

func userIDFromToken(authHeader string) (uint, bool) {
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := gojwt.Parse(parts[1], func(token *gojwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return 0, false
	}
	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return uint(userIDFloat), true
}
