package http

import (
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status of its kind. Internal errors are
// logged and their text is not exposed.
func respondError(ctx echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusFor(kind)

	message := err.Error()
	if kind == errs.KindInternal {
		ctx.Logger().Error(err)
		message = "Internal error"
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Kind:    kind.String(),
		Message: message,
	})
}

func respondStatus(ctx echo.Context, status int, kind, message string) error {
	return ctx.JSON(status, Error{Code: status, Kind: kind, Message: message})
}
