package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/models"
)

const AuthCookieName = "auth_token"

// Identity is the authenticated caller attached to the request context.
// It is set once by AttachIdentity and read-only afterwards.
type Identity struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

// AttachIdentity reads the session cookie and, when it resolves to an
// active user, attaches an Identity to the context. It never blocks the
// request: a missing, malformed or stale token just means no identity.
func AttachIdentity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AuthCookieName)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := helpers.VerifyToken(tokenString, jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		db, exists := c.Get("db")
		if !exists {
			c.Next()
			return
		}
		gormDB := db.(*gorm.DB)

		var user models.User
		if err := gormDB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			c.Next()
			return
		}
		if user.Status != models.UserActive {
			c.Next()
			return
		}

		c.Set("identity", Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		})
		c.Next()
	}
}

// CurrentIdentity returns the attached identity, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get("identity")
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireOwnerRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}
		if identity.Role != models.RoleOwner {
			helpers.RespondWithError(c, http.StatusForbidden, "Owner access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}
