package auth

import (
	"strings"
	"time"

	"memorial/config"
	"memorial/db"
	"memorial/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the Bearer token payload for non-browser clients
type Claims struct {
	UserID uint64 `json:"uid"`
	jwt.RegisteredClaims
}

// NewToken issues a signed Bearer token for the user
func NewToken(userID uint64) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(config.JWT_EXPIRES_IN) * time.Second)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}

// bearerUser resolves the user from an Authorization header. Returns a
// zero-ID user when there is no valid token - bearer auth is always optional,
// the session cookie being the primary mechanism.
func bearerUser(c *gin.Context) (user models.User) {
	if config.JWT_SECRET == "" {
		return
	}
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.JWT_SECRET), nil
	})
	if err != nil || !token.Valid {
		return
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return
	}
	user.ID = claims.UserID
	if db.Instance.First(&user).Error != nil {
		user.ID = 0
	}
	return
}
