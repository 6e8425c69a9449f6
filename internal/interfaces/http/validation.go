package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores nombran el campo como aparece en el JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(v any) error {
	return validate.Struct(v)
}

// respondError traduce errores de validación y del dominio a respuestas JSON.
func respondError(c *fiber.Ctx, err error) error {
	var valErr validator.ValidationErrors
	if errors.As(err, &valErr) {
		fields := make([]string, 0, len(valErr))
		for _, fe := range valErr {
			fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "validación fallida en " + strings.Join(fields, ", "),
		})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		status, code = fiber.StatusConflict, "DUPLICATE_ID"
	case errors.Is(err, domain.ErrParentNotFound):
		status, code = fiber.StatusUnprocessableEntity, "PARENT_NOT_FOUND"
	case errors.Is(err, domain.ErrMalformedCatalog):
		status, code = fiber.StatusUnprocessableEntity, "MALFORMED_CATALOG"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// ErrorHandler manejador de errores de la app: rutas inexistentes, pánicos recuperados, etc.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return respondError(c, err)
}

func invalidQuery(key, raw string) error {
	return fmt.Errorf("%w: parámetro %s=%q", domain.ErrInvalidInput, key, raw)
}
