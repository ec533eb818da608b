package handler

import (
	"errors"

	authdto "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
)

func (h *ClinicHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.doctors.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewDoctorOutputs(doctors))
}

func (h *ClinicHandler) GetDoctor(c *fiber.Ctx) error {
	doctor, err := h.doctors.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewDoctorOutput(doctor))
}

func (h *ClinicHandler) CreateDoctor(c *fiber.Ctx) error {
	var input authdto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	doctor, err := h.doctors.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return response.Created(c, "doctor created", dto.NewDoctorOutput(doctor))
}

func (h *ClinicHandler) UpdateDoctor(c *fiber.Ctx) error {
	var input dto.DoctorUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return errInvalidBody
	}

	doctor, err := h.doctors.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewDoctorOutput(doctor))
}

func (h *ClinicHandler) GetAvailability(c *fiber.Ctx) error {
	slots, err := h.availability.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewSlotOutputs(slots))
}

// SetAvailability replaces the doctor's weekly slots with the request body.
func (h *ClinicHandler) SetAvailability(c *fiber.Ctx) error {
	var input dto.AvailabilityInput
	if err := c.BodyParser(&input); err != nil {
		if errors.Is(err, dto.ErrSlotsNotArray) {
			return err
		}
		return errInvalidBody
	}
	if input.Slots == nil {
		return dto.ErrSlotsNotArray
	}

	slots, err := h.availability.Replace(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewSlotOutputs(slots))
}
