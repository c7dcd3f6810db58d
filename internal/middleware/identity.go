package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/rs/zerolog/log"
)

const userContextKey = "currentUser"

// Identity resolves the caller from the X-User-ID header set by the
// authenticating gateway. Token verification happens upstream; this service
// only maps the asserted identity to a user record.
func Identity(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(header, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid X-User-ID header"})
			return
		}

		user, err := userRepo.FindByID(uint(id))
		if err != nil {
			log.Warn().Err(err).Uint64("user_id", id).Msg("Identity: unknown user asserted by gateway")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unknown user"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allow list.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Permission denied"})
	}
}

// CurrentUser returns the resolved caller, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
