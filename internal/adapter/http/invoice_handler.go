package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	invoiceuc "invoice-financing/internal/usecase/invoice"
)

type InvoiceHandler struct {
	uc  *invoiceuc.Usecase
	log *zap.Logger
}

func NewInvoiceHandler(uc *invoiceuc.Usecase, log *zap.Logger) *InvoiceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceHandler{uc: uc, log: log.Named("http.invoice")}
}

type createInvoiceReq struct {
	IssuerID       uint64 `json:"issuer_id"        validate:"required,gt=0"`
	ObligorID      uint64 `json:"obligor_id"       validate:"required,gt=0"`
	FaceValueCents int64  `json:"face_value_cents" validate:"gte=0"`
	MaturityDate   string `json:"maturity_date"    validate:"required,datetime=2006-01-02"`
}

type invoicePath struct {
	InvoiceID string `param:"invoice_id" json:"invoice_id" validate:"required,hex32"`
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	var req createInvoiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), invoiceuc.CreateInvoiceInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	p := invoicePath{InvoiceID: c.Param("invoice_id")}
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice_id", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Get(c.Request().Context(), p.InvoiceID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
