package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/honlnm/biztime/internal/entity"
)

type CreateInvoiceRequest struct {
	CompCode string           `json:"comp_code" validate:"required,min=1,max=64"`
	Amount   *decimal.Decimal `json:"amt" validate:"required,money" swaggertype:"number"`
}

type UpdateInvoiceRequest struct {
	Amount *decimal.Decimal `json:"amt" validate:"required,money" swaggertype:"number"`
	Paid   *bool            `json:"paid" validate:"required"`
}

type InvoiceSummaryResponse struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

type InvoicesResponse struct {
	Invoices []InvoiceSummaryResponse `json:"invoices"`
}

type InvoiceResponse struct {
	ID       int64       `json:"id"`
	CompCode string      `json:"comp_code"`
	Amount   json.Number `json:"amt" swaggertype:"number"`
	Paid     bool        `json:"paid"`
	AddDate  time.Time   `json:"add_date"`
	PaidDate *time.Time  `json:"paid_date"`
}

type InvoiceEnvelope struct {
	Invoice InvoiceResponse `json:"invoice"`
}

type InvoiceDetailsResponse struct {
	ID       int64           `json:"id"`
	Company  CompanyResponse `json:"company"`
	Amount   json.Number     `json:"amt" swaggertype:"number"`
	Paid     bool            `json:"paid"`
	AddDate  time.Time       `json:"add_date"`
	PaidDate *time.Time      `json:"paid_date"`
}

type InvoiceDetailsEnvelope struct {
	Invoice InvoiceDetailsResponse `json:"invoice"`
}

func toInvoiceResponse(inv entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:       inv.ID,
		CompCode: inv.CompCode,
		Amount:   json.Number(inv.Amount.String()),
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
	}
}

func invoiceID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invoice id %q is not an integer", entity.ErrInvalidArgument, raw)
	}

	return id, nil
}

// Invoices lists invoice ids with their company codes
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Success 200 {object} InvoicesResponse
// @Failure 500 {object} ErrorResponse
// @Router /invoices [get]
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, err := h.s.Invoices(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to list invoices")
		return
	}

	resp := InvoicesResponse{Invoices: make([]InvoiceSummaryResponse, 0, len(invoices))}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, InvoiceSummaryResponse{ID: inv.ID, CompCode: inv.CompCode})
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// Invoice returns an invoice with its company
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice id"
// @Success 200 {object} InvoiceDetailsEnvelope
// @Failure 400 {object} ErrorResponse "Invalid invoice id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id} [get]
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := invoiceID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	inv, err := h.s.Invoice(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, fmt.Sprintf("Can't find invoice with id of %d", id))
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoiceDetailsEnvelope{Invoice: InvoiceDetailsResponse{
		ID:       inv.ID,
		Company:  toCompanyResponse(inv.Company),
		Amount:   json.Number(inv.Amount.String()),
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
	}})
}

// CreateInvoice
// @Summary Create invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param CreateInvoiceRequest body CreateInvoiceRequest true "Invoice"
// @Success 201 {object} InvoiceEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse
// @Router /invoices [post]
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := h.decodeRequest(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		return
	}

	inv, err := h.s.CreateInvoice(ctx, req.CompCode, *req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to create invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, InvoiceEnvelope{Invoice: toInvoiceResponse(inv)})
}

// UpdateInvoice changes amount and paid state of an invoice
// @Summary Update invoice
// @Description Paying an unpaid invoice stamps paid_date, unpaying clears it
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice id"
// @Param UpdateInvoiceRequest body UpdateInvoiceRequest true "Invoice"
// @Success 200 {object} InvoiceEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id} [put]
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := invoiceID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	var req UpdateInvoiceRequest

	err = h.decodeRequest(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		return
	}

	inv, err := h.s.UpdateInvoice(ctx, id, *req.Amount, *req.Paid)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, fmt.Sprintf("Can't update invoice with id of %d", id))
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to update invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoiceEnvelope{Invoice: toInvoiceResponse(inv)})
}

// DeleteInvoice
// @Summary Delete invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice id"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse "Invalid invoice id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id} [delete]
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := invoiceID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	err = h.s.DeleteInvoice(ctx, id)

	switch {
	case err == nil:
		SendJSON(ctx, w, http.StatusOK, deletedResponse)
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, fmt.Sprintf("Can't delete invoice with id of %d", id))
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to delete invoice")
	}
}
