package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/pkg/util"
)

const principalKey = "auth_principal"

// LoginRenderer renders the login page with a generic failure message when a
// web login attempt is rejected. The message must not reveal which part of
// the credential failed.
type LoginRenderer interface {
	RenderLoginFailed(c *fiber.Ctx) error
}

// Middleware adapts the decision engine to Fiber. It runs on every request
// ahead of all route handlers: Allowed attaches the principal and continues,
// Continue proceeds anonymously, Unauthorized and Redirect terminate the
// request without invoking downstream handlers.
func (g *Gateway) Middleware(loginPage LoginRenderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := Request{
			Path:          c.Path(),
			Authorization: c.Get(fiber.HeaderAuthorization),
			SessionID:     c.Cookies(SessionCookieName),
		}
		if g.classifier.Classify(req.Path) == KindWeb && c.Method() == fiber.MethodPost && req.Path == g.loginPath {
			req.Username = c.FormValue("username")
			req.Password = c.FormValue("password")
			req.HasCredentials = true
		}

		decision := g.Authenticate(c.UserContext(), req)
		switch decision.Kind {
		case DecisionAllowed:
			if decision.SessionID != "" {
				c.Cookie(&fiber.Cookie{
					Name:     SessionCookieName,
					Value:    decision.SessionID,
					Path:     "/",
					HTTPOnly: true,
					SameSite: fiber.CookieSameSiteLaxMode,
				})
			}
			c.Locals(principalKey, decision.Principal)
			return c.Next()
		case DecisionContinue:
			return c.Next()
		case DecisionRedirect:
			return c.Redirect(decision.RedirectTo, fiber.StatusFound)
		default:
			if g.classifier.Classify(req.Path) == KindAPI {
				// Uniform signal: malformed, forged and expired tokens are
				// indistinguishable to the caller.
				return util.NewUnauthorized("invalid or expired credentials")
			}
			if loginPage != nil {
				return loginPage.RenderLoginFailed(c)
			}
			return util.NewUnauthorized("login failed")
		}
	}
}

// PrincipalFromContext retrieves the identity resolved by the gateway. The
// second return is false for anonymous requests.
func PrincipalFromContext(c *fiber.Ctx) (domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}
