package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/pkg/util"
)

// RoleRequirement is the static role metadata attached to an operation. An
// empty AnyOf permits every caller, anonymous ones included. Requirements are
// never mutated at runtime.
type RoleRequirement struct {
	AnyOf []string
}

// Authorize reports whether a principal satisfies the requirement: permit iff
// AnyOf is empty or intersects the principal's role set. Anonymous principals
// carry the empty role set, so they only pass empty requirements.
func Authorize(principal domain.Principal, requirement RoleRequirement) bool {
	if len(requirement.AnyOf) == 0 {
		return true
	}
	for _, role := range requirement.AnyOf {
		if principal.HasRole(role) {
			return true
		}
	}
	return false
}

// RequireRoles gates a route on the resolved principal's role set. Calling it
// with no arguments declares a permit-all operation.
func RequireRoles(anyOf ...string) fiber.Handler {
	requirement := RoleRequirement{AnyOf: anyOf}
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if !Authorize(principal, requirement) {
			if principal.Anonymous() {
				return util.NewUnauthorized("authentication required")
			}
			return util.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
