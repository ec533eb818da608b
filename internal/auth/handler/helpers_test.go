package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/mocks"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	app    *fiber.App
	repo   *mocks.MockUserRepository
	tokens *mocks.MockTokenGenerator
	h      *handler.AuthHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	cfg := &config.Config{BcryptCost: bcrypt.MinCost, LoginMaxAttempts: 5, LoginLockoutMinutes: 30}
	log := zaptest.NewLogger(t)

	userService := service.NewUserService(mockRepo, mockTokenService, cfg, log)
	authHandler := handler.NewAuthHandler(userService, mockTokenService)

	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler(true, log)})
	handler.RegisterRoutes(app.Group("/api/v1"), authHandler)

	return &fixture{app: app, repo: mockRepo, tokens: mockTokenService, h: authHandler}
}

// signedInAs makes the token verifier accept token as the given caller.
func (f *fixture) signedInAs(token, userID string, role domain.Role) {
	f.tokens.EXPECT().VerifyAccessToken(token).
		Return(&service.JWTCustomClaims{UserID: userID, Email: userID + "@example.com", Role: role, TokenType: "access"}, nil).
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
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
