package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/coffeechat/coffeechat-api/internal/config"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminRequired guards the moderation console. The credential set is injected
// once at wiring time from Config: a shared admin token checked against the
// X-Admin-Token header, plus allow-lists of admin emails and user ids matched
// against JWT claims. With nothing provisioned the routes answer 503 rather
// than silently admitting no one for a reason callers cannot see.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)
	adminUserIDs := parseCSV(cfg.AdminUserIDs)
	provisioned := cfg.AdminToken != "" || len(adminEmails) > 0 || len(adminUserIDs) > 0

	return func(c *fiber.Ctx) error {
		if !provisioned {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    "SERVER_MISCONFIGURED",
				Message: "admin credential is not provisioned",
			})
		}

		if cfg.AdminToken != "" {
			header := c.Get("X-Admin-Token")
			if header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		if token, ok := c.Locals("user").(*jwt.Token); ok && token != nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				email, _ := claims["email"].(string)
				sub, _ := claims["sub"].(string)
				if contains(adminEmails, email) || contains(adminUserIDs, sub) {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    "UNAUTHORIZED",
			Message: "admin credential missing or invalid",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
