package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// UserIDLocalKey is the key used to store the authenticated user ID in Fiber's context locals.
	UserIDLocalKey = "user_id"
	// UserRoleLocalKey is the key used to store the authenticated user's role.
	UserRoleLocalKey = "user_role"
)

// Auth returns a middleware that validates a Bearer JWT signed with the
// given HMAC secret and stores the subject and role claims in context locals.
//
// Identity and role come from the token only; no user lookup happens here.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "no token provided")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "could not parse token claims")
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "subject claim is missing")
		}
		role, _ := claims["role"].(string)

		c.Locals(UserIDLocalKey, sub)
		c.Locals(UserRoleLocalKey, role)

		return c.Next()
	}
}

// RequireRole returns a middleware that rejects requests whose authenticated
// role does not match. It must run after Auth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r, _ := c.Locals(UserRoleLocalKey).(string); r != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
