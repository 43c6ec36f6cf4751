package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

const actorContextKey = "actor"

// AuthRequired validates the Bearer token and stores the resulting Actor in
// the request context. Guest tokens are valid actors too.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Authorization header must be Bearer token"})
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(actorContextKey, claims.Actor())
		c.Next()
	}
}

// RequireRole gates a route group by role. Guests pass the role gate; each
// operation still applies its ownership checks.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authenticated"})
			return
		}
		if !auth.HasRole(actor, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "Insufficient role"})
			return
		}
		c.Next()
	}
}

// RequireUser refuses guest tokens; for routes that need a real account.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || actor.IsGuest {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "A registered account is required"})
			return
		}
		c.Next()
	}
}

// GetActor returns the request's authenticated actor.
func GetActor(c *gin.Context) (auth.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := value.(auth.Actor)
	return actor, ok
}
