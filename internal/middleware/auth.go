package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/todosimple/taskboard/internal/constants"
	apierrors "github.com/todosimple/taskboard/internal/errors"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/services"
)

// RequireAuth rebuilds the Principal from the session and aborts with
// 401 when there is none. Identity resolution happens here, before any
// authorization or data access in the handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, ok := session.Get(constants.SessionKeyUserID).(uint64)
		if !ok || userID == 0 {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		name, _ := session.Get(constants.SessionKeyName).(string)
		email, _ := session.Get(constants.SessionKeyEmail).(string)
		role, _ := session.Get(constants.SessionKeyRole).(string)

		c.Set(constants.ContextKeyPrincipal, services.Principal{
			UserID: userID,
			Name:   name,
			Email:  email,
			Role:   role,
		})
		c.Next()
	}
}

// RequireRole gates a route on the principal's global role.
func RequireRole(roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if principal.Role != roleName {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route on the global Admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// GetPrincipal retrieves the authenticated principal from context.
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return services.Principal{}, false
	}
	principal, ok := value.(services.Principal)
	return principal, ok
}
