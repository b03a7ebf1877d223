package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
)

// respondError traduce errores de dominio a status HTTP y cuerpo dto.ErrorResponse.
// El rechazo del filtro de calidad adjunta sus cifras en details.
func respondError(c *fiber.Ctx, err error) error {
	var ge *fulfillment.GateError
	if errors.As(err, &ge) {
		status, code := fiber.StatusBadRequest, "VALIDATION"
		if ge.Reason == fulfillment.GateOrderNotFound {
			status, code = fiber.StatusNotFound, "NOT_FOUND"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: ge.Error(), Details: ge.GateFigures})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrQualityGate),
		errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler handler de errores de Fiber para rutas inexistentes y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "VALIDATION"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
