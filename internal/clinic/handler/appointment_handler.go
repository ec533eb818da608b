package handler

import (
	authhandler "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
)

func (h *ClinicHandler) CreateAppointment(c *fiber.Ctx) error {
	principal, err := authhandler.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var input dto.CreateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	appointment, err := h.bookings.Create(c.UserContext(), principal, input)
	if err != nil {
		return err
	}
	return response.Created(c, "appointment booked", dto.NewAppointmentOutput(appointment))
}

func (h *ClinicHandler) ListAppointments(c *fiber.Ctx) error {
	principal, err := authhandler.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var query dto.AppointmentQuery
	if err := c.QueryParser(&query); err != nil {
		return errInvalidBody
	}

	appointments, err := h.bookings.List(c.UserContext(), principal, query)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewAppointmentOutputs(appointments))
}

func (h *ClinicHandler) GetAppointment(c *fiber.Ctx) error {
	principal, err := authhandler.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	appointment, err := h.bookings.Get(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewAppointmentOutput(appointment))
}

func (h *ClinicHandler) UpdateAppointment(c *fiber.Ctx) error {
	principal, err := authhandler.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var input dto.UpdateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	appointment, err := h.bookings.Update(c.UserContext(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewAppointmentOutput(appointment))
}

// CancelAppointment accepts an optional body carrying cancellation_reason.
func (h *ClinicHandler) CancelAppointment(c *fiber.Ctx) error {
	principal, err := authhandler.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var input dto.CancelAppointmentInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return errInvalidBody
		}
	}

	appointment, err := h.bookings.Cancel(c.UserContext(), principal, c.Params("id"), input.Reason)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewAppointmentOutput(appointment))
}

func (h *ClinicHandler) CompleteAppointment(c *fiber.Ctx) error {
	principal, err := authhandler.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	appointment, err := h.bookings.Complete(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewAppointmentOutput(appointment))
}

func (h *ClinicHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.bookings.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "appointment deleted")
}
