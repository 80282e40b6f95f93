package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"maktaba/internal/auth"
)

const principalContextKey = "maktaba/principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID      uint
	Username    string
	Roles       []string
	Permissions []string
}

// HasPermission reports whether the principal carries the named permission.
func (p *Principal) HasPermission(name string) bool {
	if p == nil {
		return false
	}
	return auth.Authorize(p.Permissions, name)
}

// CurrentPrincipal returns the principal set by Authenticate, or nil when the
// request is anonymous.
func CurrentPrincipal(c *gin.Context) *Principal {
	value, ok := c.Get(principalContextKey)
	if !ok {
		return nil
	}
	principal, ok := value.(*Principal)
	if !ok {
		return nil
	}
	return principal
}

// Authenticate validates the bearer token and loads the caller's roles and
// permissions. Requests without a valid token are rejected.
func (h *HTTPHandler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			AbortError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "malformed authorization header")
			return
		}

		claims, err := h.tokens.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				AbortError(c, http.StatusUnauthorized, ErrCodeSessionExpired, "access token expired")
				return
			}
			AbortError(c, http.StatusForbidden, ErrCodeForbidden, "invalid access token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.repo.GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				AbortError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown user")
				return
			}
			logrus.WithError(err).Error("load user for token")
			AbortError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		if !user.IsActive {
			AbortError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "account disabled")
			return
		}

		roles := make([]string, 0, len(user.Roles))
		for _, role := range user.Roles {
			roles = append(roles, role.Name)
		}

		c.Set(principalContextKey, &Principal{
			UserID:      user.ID,
			Username:    user.Username,
			Roles:       roles,
			Permissions: auth.EffectivePermissions(user.Roles),
		})
		c.Next()
	}
}

// RequirePermission guards a route behind a single permission. It must run
// after Authenticate.
func (h *HTTPHandler) RequirePermission(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			AbortError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
			return
		}
		if !principal.HasPermission(name) {
			AbortError(c, http.StatusForbidden, ErrCodeForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}
