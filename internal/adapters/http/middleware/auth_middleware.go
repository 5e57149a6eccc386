package middleware

import (
	"errors"
	"strings"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the context key the authenticated user is stored under
const UserKey = "user"

// AuthMiddleware resolves the session token to a live user record and
// stores it in the request context. The token is read from the
// access_token cookie first, then from the Authorization header.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Not authenticated")
		}

		// 4. Resolve token to a live user. Every decode or lookup
		// failure gets the same generic message.
		user, err := authService.ResolveToken(c.Context(), accessToken)
		if err != nil {
			if errors.Is(err, services.ErrUserInactive) {
				return response.Forbidden(c, "User account is inactive")
			}
			if errors.Is(err, services.ErrInvalidToken) {
				return response.Unauthorized(c, "Could not validate credentials")
			}
			return response.InternalServerError(c, "Failed to authenticate request")
		}

		// 5. Set user in context
		c.Locals(UserKey, user)

		return c.Next()
	}
}

// RequireRoles restricts a route to the given roles. Must run after
// AuthMiddleware.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(UserKey).(*models.User)
		if !ok {
			return response.Unauthorized(c, "Not authenticated")
		}

		if !services.InRole(user, allowed...) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// StaffOnly allows admin, analyst and loan officer roles
func StaffOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin, domain.RoleAnalyst, domain.RoleLoanOfficer)
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// CurrentUser returns the authenticated user stored by AuthMiddleware
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
