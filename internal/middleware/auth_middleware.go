package middleware

import (
	"net/http"
	"smartMarket/pkg/logger"
	"smartMarket/pkg/utils"
	"strconv"
	"strings"
	"time"

	jsonres "smartMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware requires a valid bearer JWT and puts user_id, role and
// the raw token on the echo context.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errRes := parseAuthHeader(c)
			if errRes != nil {
				return c.JSON(http.StatusUnauthorized, *errRes)
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Token expired", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// OptionalAuthMiddleware sets user identity when a valid token is present
// and lets anonymous requests straight through.
func OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errRes := parseAuthHeader(c)
			if errRes != nil {
				return next(c)
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return next(c)
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				return next(c)
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok || strings.ToUpper(roleStr) != "ADMIN" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

func parseAuthHeader(c echo.Context) (*utils.JWTClaims, string, *jsonres.JSONRes) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		res := jsonres.Error("UNAUTHORIZED", "Missing authorization header", nil)
		return nil, "", &res
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		res := jsonres.Error("UNAUTHORIZED", "Invalid authorization format", nil)
		return nil, "", &res
	}

	tokenString := tokenParts[1]

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		res := jsonres.Error("UNAUTHORIZED", "Invalid token", nil)
		return nil, "", &res
	}

	return claims, tokenString, nil
}
