package handler

import (
	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	authhandler "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/handler"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the clinic endpoints. gate supplies the auth and
// role middleware.
func RegisterRoutes(router fiber.Router, gate *authhandler.AuthHandler, h *ClinicHandler) {
	patients := router.Group("/patients", gate.RequireAuth)
	patients.Post("/", gate.RequireRole(authdomain.RolePatient, authdomain.RoleAdmin), h.CreatePatient)
	patients.Get("/:id", gate.RequireOwnershipOrAdmin("id"), h.GetPatient)
	patients.Put("/:id", gate.RequireOwnershipOrAdmin("id"), h.UpdatePatient)

	doctorOrAdmin := gate.RequireRole(authdomain.RoleDoctor, authdomain.RoleAdmin)

	// Doctor directory and availability reads are public
	doctors := router.Group("/doctors")
	doctors.Get("/", h.ListDoctors)
	doctors.Get("/:id", h.GetDoctor)
	doctors.Get("/:id/availability", h.GetAvailability)
	doctors.Post("/", gate.RequireAuth, gate.RequireRole(authdomain.RoleAdmin), h.CreateDoctor)
	doctors.Put("/:id", gate.RequireAuth, doctorOrAdmin, gate.RequireOwnershipOrAdmin("id"), h.UpdateDoctor)
	doctors.Post("/:id/availability", gate.RequireAuth, doctorOrAdmin, gate.RequireOwnershipOrAdmin("id"), h.SetAvailability)

	appointments := router.Group("/appointments", gate.RequireAuth)
	appointments.Post("/", h.CreateAppointment)
	appointments.Get("/", gate.RequireAppointmentAccess(), h.ListAppointments)
	appointments.Get("/:id", gate.RequireAppointmentAccess(), h.GetAppointment)
	appointments.Put("/:id", gate.RequireAppointmentAccess(), h.UpdateAppointment)
	appointments.Post("/:id/cancel", gate.RequireAppointmentAccess(), h.CancelAppointment)
	appointments.Post("/:id/complete", doctorOrAdmin, h.CompleteAppointment)
	appointments.Delete("/:id", gate.RequireRole(authdomain.RoleAdmin), h.DeleteAppointment)
}
