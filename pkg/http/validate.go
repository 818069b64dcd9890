package http

import (
	"errors"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// ReadAndValidateRequest binds a request into T, applies struct
// defaults and runs validation. Validation failures return an
// AppError listing the offending fields.
func ReadAndValidateRequest[T any](c echo.Context) (*T, error) {
	req := new(T)

	if err := c.Bind(req); err != nil {
		return nil, NewBadRequestError("invalid request payload", err)
	}

	if err := defaults.Set(req); err != nil {
		return nil, NewInternalError("apply defaults", err)
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, NewValidationError(formatValidationErrors(verrs), err)
		}
		return nil, NewValidationError("request validation failed", err)
	}

	return req, nil
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	msg := "validation failed:"
	for _, fe := range verrs {
		msg += fmt.Sprintf(" %s (%s)", fe.Field(), fe.Tag())
	}
	return msg
}
