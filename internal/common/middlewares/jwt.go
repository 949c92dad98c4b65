package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"medicare-backend/pkg/utils"
)

const ContextKeyClaims = "claims"

// JWTMiddleware memeriksa header Authorization (Bearer token) dan
// menyimpan klaim ke context echo dengan key ContextKeyClaims.
// roles kosong berarti semua role yang terautentikasi boleh lewat.
func JWTMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Authorization header missing",
					"data":    nil,
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid authorization header",
					"data":    nil,
				})
			}
			claims, err := utils.ValidateJWTToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid token: " + err.Error(),
					"data":    nil,
				})
			}

			if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"message": "Role " + claims.Role + " tidak berhak mengakses endpoint ini",
					"data":    nil,
				})
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
