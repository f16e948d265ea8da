package middleware

import (
	"chalkboard/config"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyMiddleware guards admin endpoints with the shared platform key,
// supplied in the X-Admin-Key header.
func AdminKeyMiddleware(c *fiber.Ctx) error {
	if !AdminKeyMatches(c.Get("X-Admin-Key")) {
		return JsonResponse(c, fiber.StatusForbidden, false, "Forbidden - Invalid admin key", nil)
	}
	return c.Next()
}

// AdminKeyMatches reports whether the supplied key equals the configured
// admin key. An empty configured key rejects everything.
func AdminKeyMatches(key string) bool {
	configured := config.AppConfig.AdminKey
	if configured == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(configured)) == 1
}
