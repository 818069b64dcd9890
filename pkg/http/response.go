package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Data writes a successful response with a payload.
func Data(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// List writes a successful list response with a count.
func List(c echo.Context, items interface{}, count int) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    ListDataResponse{Items: items, Count: count},
	})
}

// BadRequest writes a 400 response.
func BadRequest(c echo.Context, message string) error {
	return errorResponse(c, NewBadRequestError(message, nil))
}

// NotFound writes a 404 response.
func NotFound(c echo.Context, message string) error {
	return errorResponse(c, NewNotFoundError(message))
}

// InternalServerError writes a 500 response.
func InternalServerError(c echo.Context, message string) error {
	return errorResponse(c, NewInternalError(message, nil))
}

// AppErrorResponse writes a response derived from err. AppError values
// keep their status and code; anything else maps to a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errorResponse(c, appErr)
	}
	return errorResponse(c, NewInternalError(err.Error(), nil))
}

func errorResponse(c echo.Context, appErr *AppError) error {
	return c.JSON(appErr.Status, APIResponse{Success: false, Error: appErr})
}
