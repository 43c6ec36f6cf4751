package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

var jwtSecret = []byte("projectsphere-dev-secret")

// SetJWTSecret overrides the signing secret. Call once at startup before
// any tokens are issued.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims carries the actor identity inside a signed token. Guest sessions
// carry IsGuest=true and no user ID.
type Claims struct {
	UserID     uint              `json:"user_id,omitempty"`
	Name       string            `json:"name,omitempty"`
	Role       models.UserRole   `json:"role,omitempty"`
	Department models.Department `json:"department,omitempty"`
	IsGuest    bool              `json:"is_guest,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts the token claims back into an Actor value.
func (c *Claims) Actor() Actor {
	if c.IsGuest {
		return Guest()
	}
	return Actor{
		ID:         c.UserID,
		Role:       c.Role,
		Department: c.Department,
	}
}

// GenerateToken issues a signed token for an authenticated user.
func GenerateToken(user *models.User, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:     user.ID,
		Name:       user.Name,
		Role:       user.Role,
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// GenerateGuestToken issues a signed token for an anonymous guest session.
func GenerateGuestToken(ttl time.Duration) (string, error) {
	claims := Claims{
		IsGuest: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
