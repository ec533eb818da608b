package response

import (
	"errors"

	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Envelope is the body of every successful response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorBody is the body of every failed response.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

const genericMessage = "an unexpected error occurred"

func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message})
}

// ErrorHandler maps returned errors onto the error envelope. Internal errors
// are logged, and their message is hidden in production.
func ErrorHandler(isProduction bool, log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorBody{
				Error:   codeForStatus(fiberErr.Code),
				Message: fiberErr.Message,
			})
		}

		appErr := autherror.As(err)
		status := autherror.StatusCode(appErr.Kind)
		message := appErr.Message

		if appErr.Kind == autherror.KindInternal {
			log.Error("request failed",
				zap.String("method", utils.CopyString(c.Method())),
				zap.String("path", utils.CopyString(c.Path())),
				zap.Error(err),
			)
			if isProduction {
				message = genericMessage
			} else {
				message = appErr.Error()
			}
		}

		return c.Status(status).JSON(ErrorBody{Error: appErr.Code, Message: message})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return autherror.CodeValidation
	case fiber.StatusUnauthorized:
		return autherror.CodeUnauthorized
	case fiber.StatusForbidden:
		return autherror.CodeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return autherror.CodeNotFound
	case fiber.StatusConflict:
		return autherror.CodeConflict
	case fiber.StatusTooManyRequests:
		return autherror.CodeRateLimited
	default:
		return autherror.CodeInternal
	}
}
