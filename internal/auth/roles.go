package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-service/internal/domain"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

// RequireUser ensures the caller holds a USER token.
func RequireUser() fiber.Handler {
	return requireRole(domain.RoleUser)
}

// RequireAdmin ensures the caller holds an ADMIN token.
func RequireAdmin() fiber.Handler {
	return requireRole(domain.RoleAdmin)
}

func requireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		switch principal.Role {
		case required:
			return c.Next()
		case domain.RoleAdmin, domain.RoleUser:
			return apperrors.NewForbidden("insufficient role")
		default:
			return apperrors.NewForbidden("unrecognized role")
		}
	}
}
