package handler

import (
	"strings"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	authconstant "github.com/AnthoniusHendriyanto/clinic-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth verifies the bearer access token and stores the caller in locals.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, authconstant.DefaultTokenType) || strings.TrimSpace(token) == "" {
		return autherror.ErrUnauthorized
	}

	claims, err := h.tokenService.VerifyAccessToken(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if !claims.Role.Valid() {
		return autherror.ErrTokenInvalid
	}

	c.Locals(authconstant.LocalsPrincipal, &domain.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
	return c.Next()
}

// RequireRole lets the request through only for the listed roles.
func (h *AuthHandler) RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}
		for _, role := range allowed {
			if principal.Role == role {
				return c.Next()
			}
		}
		return autherror.ErrForbidden
	}
}

// RequireOwnershipOrAdmin compares the caller id with the named route param,
// falling back to a top level field of the JSON body.
func (h *AuthHandler) RequireOwnershipOrAdmin(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}
		if principal.IsAdmin() {
			return c.Next()
		}

		owner := c.Params(field)
		if owner == "" {
			owner = bodyField(c, field)
		}
		if owner == "" {
			return autherror.MissingField(field)
		}
		if owner != principal.UserID {
			return autherror.ErrForbidden
		}
		return c.Next()
	}
}

// RequireAppointmentAccess admits every known role. Patients are narrowed to
// their own appointments by the booking service.
func (h *AuthHandler) RequireAppointmentAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}
		switch principal.Role {
		case domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient:
			return c.Next()
		default:
			return autherror.ErrForbidden
		}
	}
}

// CurrentPrincipal returns the caller stored by RequireAuth.
func CurrentPrincipal(c *fiber.Ctx) (*domain.Principal, error) {
	principal, ok := c.Locals(authconstant.LocalsPrincipal).(*domain.Principal)
	if !ok || principal == nil {
		return nil, autherror.ErrUnauthorized
	}
	return principal, nil
}

func bodyField(c *fiber.Ctx, field string) string {
	body := c.Body()
	if len(body) == 0 {
		return ""
	}
	var payload map[string]any
	if err := c.App().Config().JSONDecoder(body, &payload); err != nil {
		return ""
	}
	value, _ := payload[field].(string)
	return value
}
