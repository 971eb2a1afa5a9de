package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/keante032/SB-Capstone1/internal/common"
)

const loginPath = "/api/v1/login"

// Messages shown to users. Internal error details are logged only.
const (
	msgInvalidCredentials = "Email or password is incorrect."
	msgLoginRequired      = "Log in to continue."
	msgDuplicateEmail     = "That email is already registered."
	msgNotFound           = "Not found."
	msgProviderDown       = "The weather service is unavailable right now. Please try again."
	msgInternal           = "Internal server error."
)

// statusFor maps an error onto an HTTP status and user message.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, common.ErrInvalidQuery), errors.Is(err, common.ErrInvalidCredential):
		return fiber.StatusUnprocessableEntity, "Please correct the highlighted fields."
	case errors.Is(err, common.ErrDuplicateEmail):
		return fiber.StatusConflict, msgDuplicateEmail
	case errors.Is(err, common.ErrConflict):
		return fiber.StatusConflict, "Already exists."
	case errors.Is(err, common.ErrNotAuthenticated):
		return fiber.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrUnauthorized):
		return fiber.StatusUnauthorized, msgLoginRequired
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound, msgNotFound
	case errors.Is(err, common.ErrProviderUnavailable):
		return fiber.StatusBadGateway, msgProviderDown
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}

// respondError writes the JSON error body. extra is merged in, which lets
// handlers echo the submitted form.
func respondError(c *fiber.Ctx, err error, extra fiber.Map) error {
	code, msg := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		ev := log.Error()
		if code == fiber.StatusBadGateway {
			ev = log.Warn()
		}
		ev.Err(err).Str("path", c.Path()).Int("status", code).Msg("request failed")
	}

	body := fiber.Map{"error": msg}
	if errors.Is(err, common.ErrUnauthorized) {
		body["login"] = loginPath
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

// ErrorHandler is the fiber error handler for anything a handler returns
// without responding.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err, nil)
}
