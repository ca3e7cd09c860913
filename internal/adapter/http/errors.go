package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
	"invoice-financing/internal/usecase/financing"
	invoiceuc "invoice-financing/internal/usecase/invoice"
)

// statusFor maps domain sentinels to HTTP codes. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, invoice.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, invoice.ErrAlreadyProcessed),
		errors.Is(err, financing.ErrRunInProgress),
		errors.Is(err, financing.ErrNoFinanciers):
		return http.StatusConflict
	case errors.Is(err, party.ErrIssuerNotFound),
		errors.Is(err, party.ErrObligorNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, invoiceuc.ErrInvalidMaturityDate),
		errors.Is(err, invoice.ErrInvalidFaceValue),
		errors.Is(err, invoice.ErrMissingIssuer),
		errors.Is(err, invoice.ErrMissingObligor),
		errors.Is(err, invoice.ErrMissingMaturity):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, log *zap.Logger, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		msg = http.StatusText(code)
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
