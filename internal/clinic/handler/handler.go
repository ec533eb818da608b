package handler

import (
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/service"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
)

type ClinicHandler struct {
	patients     *service.PatientService
	doctors      *service.DoctorService
	availability *service.AvailabilityService
	bookings     *service.BookingService
}

func NewClinicHandler(
	patients *service.PatientService,
	doctors *service.DoctorService,
	availability *service.AvailabilityService,
	bookings *service.BookingService,
) *ClinicHandler {
	return &ClinicHandler{
		patients:     patients,
		doctors:      doctors,
		availability: availability,
		bookings:     bookings,
	}
}

var errInvalidBody = autherror.Validation("invalid request body")
