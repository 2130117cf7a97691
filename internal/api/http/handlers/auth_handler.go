package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/api/dto"
	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/pkg/util"
)

// AuthHandler exposes the stateless API login endpoint.
type AuthHandler struct {
	validator *auth.CredentialValidator
	codec     *auth.TokenCodec
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(validator *auth.CredentialValidator, codec *auth.TokenCodec) *AuthHandler {
	return &AuthHandler{validator: validator, codec: codec}
}

// Login handles POST /resources/auth/login: validate credentials, mint a
// token. No session and no server-side record of issuance; the 401 body never
// reveals which part of the credential failed.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	principal, err := h.validator.Validate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return util.NewUnauthorized("invalid credentials")
	}

	token, _, err := h.codec.Issue(principal.Name, principal.Roles)
	if err != nil {
		return util.NewInternalError(err)
	}

	return c.JSON(dto.LoginResponse{Token: token})
}
