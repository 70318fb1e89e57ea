package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ReadAndValidateRequest binds the request into req, applies struct defaults,
// and validates it. A non-nil result is ready to hand to AppErrorResponse.
func ReadAndValidateRequest(c echo.Context, req interface{}) *AppError {
	if err := c.Bind(req); err != nil {
		return BadRequestError("Request body is malformed.").WithError(err)
	}

	if err := defaults.Set(req); err != nil {
		return InternalError("Could not apply request defaults.").WithError(err)
	}

	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return validationError(err)
	}

	return nil
}

func validationError(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return BadRequestError(fieldErrorMessage(validationErrors[0])).WithError(err)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return BadRequestError(fmt.Sprintf("%v", he.Message)).WithError(err)
	}

	return BadRequestError(err.Error())
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Request body must include a %s object.", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
