package handler

import (
	authdto "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
)

func (h *ClinicHandler) CreatePatient(c *fiber.Ctx) error {
	var input authdto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	patient, err := h.patients.Create(c.UserContext(), input)
	if err != nil {
		return err
	}

	return response.Created(c, "patient created", dto.NewPatientOutput(patient))
}

func (h *ClinicHandler) GetPatient(c *fiber.Ctx) error {
	patient, err := h.patients.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewPatientOutput(patient))
}

func (h *ClinicHandler) UpdatePatient(c *fiber.Ctx) error {
	var input dto.PatientUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	patient, err := h.patients.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewPatientOutput(patient))
}
