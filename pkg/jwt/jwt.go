package jwt

import (
	"fmt"
	"time"

	"mygamelist/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 7 * 24 * time.Hour

// GenerateToken creates a signed token carrying the user ID as its subject.
func GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
