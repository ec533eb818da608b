package handler

import (
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{userService: userService, tokenService: tokenService}
}

var errInvalidBody = autherror.Validation("invalid request body")

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	result, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return response.Created(c, "registration successful", result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	input.IPAddress = c.IP()

	result, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return response.OK(c, result)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	tokens, err := h.userService.Refresh(c.UserContext(), input)
	if err != nil {
		return err
	}

	return response.OK(c, tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, err := CurrentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.userService.Logout(c.UserContext(), principal.UserID); err != nil {
		return err
	}

	return response.Message(c, "logged out")
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, err := CurrentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.userService.CurrentUser(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}

	return response.OK(c, dto.NewUserOutput(user))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, err := CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	if err := h.userService.ChangePassword(c.UserContext(), principal.UserID, input); err != nil {
		return err
	}

	return response.Message(c, "password changed")
}

func (h *AuthHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}
	return response.OK(c, out)
}

func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	if err := h.userService.ForceLogout(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "sessions revoked")
}

func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.userService.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "user deactivated")
}
