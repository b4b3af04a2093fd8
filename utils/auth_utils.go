package utils

import (
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// UserClaims is the caller identity the auth middleware extracts from a
// verified token. The API never derives identity from request bodies.
type UserClaims struct {
	Username   string `json:"username"`
	Privileged bool   `json:"privileged"`
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

// GenerateToken mints an HS256 token carrying the username and privilege
// flag, signed with JWT_SECRET. The identity provider issues these in
// production; tests mint their own.
func GenerateToken(username string, privileged bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username":   username,
		"privileged": privileged,
		"exp":        time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
