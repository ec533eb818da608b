package handler

import (
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(router fiber.Router, h *AuthHandler) {
	auth := router.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.RequireAuth, h.Logout)
	auth.Get("/me", h.RequireAuth, h.Me)
	auth.Put("/change-password", h.RequireAuth, h.ChangePassword)

	// Admin-only endpoints
	admin := router.Group("/admin", h.RequireAuth, h.RequireRole(domain.RoleAdmin))
	admin.Get("/users", h.GetAllUsers)
	admin.Delete("/users/:id/sessions", h.ForceLogout)
	admin.Post("/users/:id/deactivate", h.Deactivate)
}
