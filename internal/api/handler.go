package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/honlnm/biztime/internal/entity"
)

// @title Biztime API
// @version 1.0
// @description CRUD API for companies, industries and invoices
// @BasePath /

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	Companies(ctx context.Context) ([]entity.Company, error)
	Company(ctx context.Context, code string) (entity.Company, error)
	CreateCompany(ctx context.Context, name, description string) (entity.Company, error)
	UpdateCompany(ctx context.Context, code, name, description string) (entity.Company, error)
	DeleteCompany(ctx context.Context, code string) error
	LinkIndustry(ctx context.Context, compCode, indCode string) (entity.CompanyIndustry, error)

	Industries(ctx context.Context) ([]entity.Industry, error)
	CreateIndustry(ctx context.Context, code, industry string) (entity.Industry, error)

	Invoices(ctx context.Context) ([]entity.InvoiceSummary, error)
	Invoice(ctx context.Context, id int64) (entity.InvoiceDetails, error)
	CreateInvoice(ctx context.Context, compCode string, amount decimal.Decimal) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, amount decimal.Decimal, paid bool) (entity.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error
}

type Handler struct {
	s        Service
	validate *Validator
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s:        s,
		validate: NewValidator(),
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}

var deletedResponse = StatusResponse{Status: "deleted"}

// HealthHandler
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router /api/health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("Service is up\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is down")
		return
	}
}
