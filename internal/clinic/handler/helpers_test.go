package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	authhandler "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/handler"
	authservice "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/handler"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/service"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/mocks"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	app          *fiber.App
	tokens       *mocks.MockTokenGenerator
	users        *mocks.MockUserCreator
	patients     *mocks.MockPatientRepository
	doctors      *mocks.MockDoctorRepository
	availability *mocks.MockAvailabilityRepository
	appointments *mocks.MockAppointmentRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := zaptest.NewLogger(t)

	f := &fixture{
		tokens:       mocks.NewMockTokenGenerator(ctrl),
		users:        mocks.NewMockUserCreator(ctrl),
		patients:     mocks.NewMockPatientRepository(ctrl),
		doctors:      mocks.NewMockDoctorRepository(ctrl),
		availability: mocks.NewMockAvailabilityRepository(ctrl),
		appointments: mocks.NewMockAppointmentRepository(ctrl),
	}

	cfg := &config.Config{}
	userService := authservice.NewUserService(mocks.NewMockUserRepository(ctrl), f.tokens, cfg, log)
	gate := authhandler.NewAuthHandler(userService, f.tokens)

	clinicHandler := handler.NewClinicHandler(
		service.NewPatientService(f.users, f.patients, log),
		service.NewDoctorService(f.users, f.doctors, log),
		service.NewAvailabilityService(f.doctors, f.availability, log),
		service.NewBookingService(f.appointments, f.patients, f.doctors, f.availability, cfg, log),
	)

	f.app = fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler(true, log)})
	handler.RegisterRoutes(f.app.Group("/api/v1"), gate, clinicHandler)

	f.signedInAs("alice", "patient-a", authdomain.RolePatient)
	f.signedInAs("bob", "patient-b", authdomain.RolePatient)
	f.signedInAs("ada", "doc-1", authdomain.RoleDoctor)
	f.signedInAs("grace", "doc-2", authdomain.RoleDoctor)
	f.signedInAs("root", "admin-1", authdomain.RoleAdmin)
	return f
}

func (f *fixture) signedInAs(token, userID string, role authdomain.Role) {
	f.tokens.EXPECT().VerifyAccessToken(token).
		Return(&authservice.JWTCustomClaims{UserID: userID, Role: role, TokenType: "access"}, nil).
		AnyTimes()
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
