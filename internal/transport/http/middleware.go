package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/util"
)

const contextUserKey = "auth.user"

// RequireAuth parses the bearer token and stores the verified claims on the
// context.
func RequireAuth(jwt *util.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, errJSON("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, errJSON("invalid authorization header"))
			}
			claims, err := jwt.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errJSON("invalid or expired token"))
			}
			c.Set(contextUserKey, claims)
			return next(c)
		}
	}
}

// RequireRoles gates a group to the given roles; RequireAuth must run first.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errJSON("authentication required"))
			}
			if _, ok := allowed[claims.Role]; !ok {
				return c.JSON(http.StatusForbidden, errJSON("insufficient privileges"))
			}
			return next(c)
		}
	}
}

func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRoles(domain.RoleSuperAdmin)
}

func RequireAdmin() echo.MiddlewareFunc {
	return RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)
}

func CurrentUser(c echo.Context) (*util.Claims, bool) {
	claims, ok := c.Get(contextUserKey).(*util.Claims)
	return claims, ok && claims != nil
}
