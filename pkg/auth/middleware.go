package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "auth"

// Middleware authenticates API requests with a bearer token.
type Middleware struct {
	tokens *JWTService
}

func NewMiddleware(tokens *JWTService) *Middleware {
	return &Middleware{tokens: tokens}
}

func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrRegistry.New(CodeUnauthorized).Error(),
			})
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals(localsKey, claims)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}
	}
	return c.Cookies("access_token")
}

// GetClaims returns the authenticated identity, if any.
func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(localsKey).(*Claims)
	return claims, ok && claims != nil
}

// UserID returns the authenticated user, or fallback when the request is
// anonymous.
func UserID(c *fiber.Ctx, fallback string) string {
	if claims, ok := GetClaims(c); ok {
		return claims.UserID
	}
	return fallback
}
