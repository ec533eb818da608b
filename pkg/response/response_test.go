package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newApp(t *testing.T, production bool, fail error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler(production, zaptest.NewLogger(t))})
	app.Get("/ok", func(c *fiber.Ctx) error { return response.OK(c, fiber.Map{"id": "1"}) })
	app.Get("/fail", func(c *fiber.Ctx) error { return fail })
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestOK(t *testing.T) {
	resp, err := newApp(t, false, nil).Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "1", body["data"].(map[string]any)["id"])
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		production  bool
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"typed error", true, autherror.ErrForbidden, http.StatusForbidden, autherror.CodeForbidden, "insufficient permissions"},
		{"validation", true, autherror.MissingField("email"), http.StatusBadRequest, autherror.CodeMissingField, "email is required"},
		{"internal hidden in production", true, errors.New("pq: relation missing"), http.StatusInternalServerError, autherror.CodeInternal, "an unexpected error occurred"},
		{"internal shown in development", false, errors.New("pq: relation missing"), http.StatusInternalServerError, autherror.CodeInternal, "internal error: pq: relation missing"},
		{"fiber error", true, fiber.ErrUnprocessableEntity, http.StatusUnprocessableEntity, autherror.CodeValidation, "Unprocessable Entity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newApp(t, tt.production, tt.err).Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}

	t.Run("unknown route", func(t *testing.T) {
		resp, err := newApp(t, true, nil).Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, autherror.CodeNotFound, decode(t, resp)["error"])
	})
}
