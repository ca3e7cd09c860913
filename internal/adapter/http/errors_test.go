package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
	"invoice-financing/internal/usecase/financing"
	invoiceuc "invoice-financing/internal/usecase/invoice"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{invoice.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("finance: %w", invoice.ErrAlreadyProcessed), http.StatusConflict},
		{financing.ErrRunInProgress, http.StatusConflict},
		{financing.ErrNoFinanciers, http.StatusConflict},
		{party.ErrIssuerNotFound, http.StatusUnprocessableEntity},
		{party.ErrObligorNotFound, http.StatusUnprocessableEntity},
		{invoiceuc.ErrInvalidMaturityDate, http.StatusBadRequest},
		{invoice.ErrInvalidFaceValue, http.StatusBadRequest},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
