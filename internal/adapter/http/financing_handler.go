package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"invoice-financing/internal/usecase/financing"
)

type FinancingHandler struct {
	uc  *financing.Usecase
	log *zap.Logger
}

func NewFinancingHandler(uc *financing.Usecase, log *zap.Logger) *FinancingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FinancingHandler{uc: uc, log: log.Named("http.financing")}
}

// RunFinancing triggers a batch pass over every pending invoice.
func (h *FinancingHandler) RunFinancing(c echo.Context) error {
	summary, err := h.uc.Finance(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// FinanceInvoice evaluates one pending invoice right away.
func (h *FinancingHandler) FinanceInvoice(c echo.Context) error {
	p := invoicePath{InvoiceID: c.Param("invoice_id")}
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice_id", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.FinanceOne(c.Request().Context(), p.InvoiceID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
