package middleware

import (
	"errors"

	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Returns the standard error
// format; validation failures surface the full ordered field list so the UI
// can highlight every offending field at once.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return response.Error(c, "Validation failed", fiber.StatusBadRequest, verrs)
	}

	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return response.Error(c, message, code, nil)
}
